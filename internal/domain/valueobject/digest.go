package valueobject

import (
	"fmt"
	"strconv"
)

// DigestLength is the number of hex characters in a SHA-256 digest.
const DigestLength = 64

// Digest is the lowercase hex SHA-256 digest of a canonical payload.
type Digest struct {
	value string
}

// NewDigest validates a hex digest string.
func NewDigest(hex string) (Digest, error) {
	if len(hex) != DigestLength {
		return Digest{}, fmt.Errorf("invalid digest length %d, want %d", len(hex), DigestLength)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Digest{}, fmt.Errorf("invalid digest character %q at %d", c, i)
		}
	}
	return Digest{value: hex}, nil
}

// MustDigest is like NewDigest but panics on invalid input. Intended for
// digests produced by the hasher and for tests.
func MustDigest(hex string) Digest {
	d, err := NewDigest(hex)
	if err != nil {
		panic(err)
	}
	return d
}

// Prefix returns the first eight hex characters parsed as an unsigned integer.
func (d Digest) Prefix() uint32 {
	n, _ := strconv.ParseUint(d.value[:8], 16, 32)
	return uint32(n)
}

// String returns the hex representation.
func (d Digest) String() string {
	return d.value
}

// Short returns the first eight hex characters, for logs.
func (d Digest) Short() string {
	if len(d.value) < 8 {
		return d.value
	}
	return d.value[:8]
}

// IsZero returns true if the Digest has not been set.
func (d Digest) IsZero() bool {
	return d.value == ""
}
