package api

import (
	"encoding/json"
	"net/http"

	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/pipeline"
	"github.com/mlenz/rosette/pkg/rose"
	"github.com/mlenz/rosette/pkg/series"
)

// maxBodyBytes caps request body size. Documents are small; a megabyte is
// generous.
const maxBodyBytes = 1 << 20

// renderRequest is the body for POST /v1/render and POST /v1/layout.
type renderRequest struct {
	Document rose.Document    `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// renderResponse is the body for POST /v1/render.
type renderResponse struct {
	DocHash   string            `json:"doc_hash"`
	Bins      int               `json:"bins"`
	Warnings  []string          `json:"warnings,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
	Cache     cacheResponse     `json:"cache"`
}

// layoutResponse is the body for POST /v1/layout.
type layoutResponse struct {
	Layout rose.LayoutFile `json:"layout"`
	Cache  cacheResponse   `json:"cache"`
}

type cacheResponse struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit,omitempty"`
}

// statsRequest is the body for POST /v1/stats.
type statsRequest struct {
	Document         rose.Document `json:"document"`
	Counterclockwise bool          `json:"counterclockwise,omitempty"`
}

// statsResponse maps series name to its circular summary.
type statsResponse struct {
	Series map[string]series.Summary `json:"series"`
}

// errorResponse is the body for all error responses.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Document.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	req.Options.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), req.Document, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := renderResponse{
		DocHash:   result.DocHash,
		Bins:      result.Stats.Bins,
		Warnings:  result.Stats.Warnings,
		Artifacts: result.Artifacts,
		Cache: cacheResponse{
			LayoutHit: result.CacheInfo.LayoutHit,
			RenderHit: result.CacheInfo.RenderHit,
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Document.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	req.Options.Logger = s.logger
	lf, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Document, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout: lf,
		Cache:  cacheResponse{LayoutHit: hit},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Document.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	clockwise := !req.Counterclockwise
	names := req.Document.SeriesNames()
	resp := statsResponse{Series: make(map[string]series.Summary, len(names))}
	resp.Series[names[0]] = series.Summarize(req.Document.Values, clockwise)
	if req.Document.HasSecondary() {
		resp.Series[names[1]] = series.Summarize(req.Document.Secondary, clockwise)
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeBody decodes the JSON request body into dst, writing an error
// response and returning false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode request body"))
		return false
	}
	return true
}

// writeError maps an error to an HTTP status and writes a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForCode(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"error", err,
			"request_id", requestIDFromContext(r.Context()))
	}

	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidSeries,
		errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidOptions,
		errors.ErrCodeDegenerateSeries:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
