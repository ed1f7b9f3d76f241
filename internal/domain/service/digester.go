package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/aetherdrive/prediction-service/internal/domain/payload"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// Digester hashes canonical payloads with SHA-256.
type Digester struct{}

// NewDigester creates a new Digester.
func NewDigester() *Digester {
	return &Digester{}
}

// Digest hashes the UTF-8 bytes of a canonical form.
func (d *Digester) Digest(canonical string) valueobject.Digest {
	sum := sha256.Sum256([]byte(canonical))
	return valueobject.MustDigest(hex.EncodeToString(sum[:]))
}

// DigestPayload canonicalizes v and hashes the result. The canonical form is
// returned alongside the digest for logging and diagnostics.
func (d *Digester) DigestPayload(v payload.Value) (string, valueobject.Digest) {
	canonical := payload.Canonicalize(v)
	return canonical, d.Digest(canonical)
}
