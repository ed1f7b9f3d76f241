package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/aetherdrive/prediction-service/internal/application/dto"
	"github.com/aetherdrive/prediction-service/internal/domain/payload"
	"github.com/aetherdrive/prediction-service/internal/presentation/middleware"
)

// MaxBodyBytes is the largest request body that is parsed. Larger bodies are
// scored as the empty object.
const MaxBodyBytes = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// Predictor is the use case the handler delegates to.
type Predictor interface {
	Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error)
}

// PredictHandler serves POST /predict.
type PredictHandler struct {
	predictor Predictor
	logger    *slog.Logger
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(predictor Predictor, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{
		predictor: predictor,
		logger:    logger,
	}
}

// RegisterRoutes registers the public API on the provided ServeMux.
func (h *PredictHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.Predict)
}

// Predict scores the request body. Anything that is not a usable JSON value
// is scored as {}; the response is always 200 unless the request is gone.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	value, err := h.readPayload(r)
	if err != nil {
		h.logger.DebugContext(ctx, "payload replaced by empty object",
			"reason", err.Error(),
			"request_id", middleware.RequestIDFromContext(ctx),
		)
	}

	resp, err := h.predictor.Execute(ctx, dto.NewPredictRequest(value, middleware.RequestIDFromContext(ctx)))
	if err != nil {
		h.logger.WarnContext(ctx, "prediction failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// readPayload returns the parsed body, or the empty object and the reason it
// could not be used.
func (h *PredictHandler) readPayload(r *http.Request) (payload.Value, error) {
	if r.Body == nil {
		return payload.EmptyObject(), errors.New("request body is empty")
	}
	defer r.Body.Close()

	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return payload.EmptyObject(), errors.New("content type is not JSON")
	}
	return DecodePayload(r.Body)
}

// DecodePayload reads at most MaxBodyBytes from r and parses them. On any
// failure it returns the empty object together with the cause.
func DecodePayload(r io.Reader) (payload.Value, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return payload.EmptyObject(), err
	}
	if len(body) > MaxBodyBytes {
		return payload.EmptyObject(), errBodyTooLarge
	}

	value, err := payload.Parse(body)
	if err != nil {
		return payload.EmptyObject(), err
	}
	return value, nil
}

// isJSONContentType accepts application/json and application/*+json.
func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// EncodeJSON writes v as one line of JSON. Non-ASCII and HTML characters are
// written as is.
func EncodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = EncodeJSON(w, v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"error": msg})
}
