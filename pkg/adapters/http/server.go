package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/logica/internal/logging"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/persistence/middleware"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var rawSpec []byte

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
})

// GetSwagger returns the parsed and validated API description.
func GetSwagger() (*openapi3.T, error) {
	return loadSpec()
}

// focusGrapher is implemented by services that can highlight one variable.
type focusGrapher interface {
	GraphFocus(ctx context.Context, id, focus string) (string, error)
}

// Server serves a RuleService over HTTP.
type Server struct {
	Service ports.RuleService
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc ports.RuleService, opts ...Option) http.Handler {
	s := &Server{Service: svc}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/openapi.json", s.GetSpec)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/documents", s.ListDocuments)
	r.Route("/documents/{id}", func(r chi.Router) {
		r.Get("/items", s.ListItems)
		r.Delete("/items/{index}", s.RemoveItem)
		r.Post("/rename", s.Rename)
		r.Get("/lint", s.Lint)
		r.Get("/graph", s.GetGraph)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Logica API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// RenameRequest is the body of POST /documents/{id}/rename.
type RenameRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// RenameResponse reports how many properties were rewritten.
type RenameResponse struct {
	Changed int `json:"changed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetSpec handles GET /openapi.json.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	doc, err := GetSwagger()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.Documents(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"documents": ids})
}

// ListItems handles GET /documents/{id}/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	var hidden *bool
	if err := runtime.BindQueryParameter("form", true, false, "hidden", r.URL.Query(), &hidden); err != nil {
		s.badRequest(w, fmt.Errorf("invalid format for parameter hidden: %w", err))
		return
	}

	items, err := s.Service.Items(r.Context(), id, hidden != nil && *hidden)
	if err != nil {
		s.fail(w, err)
		return
	}
	if items == nil {
		items = []ports.RuleItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

// RemoveItem handles DELETE /documents/{id}/items/{index}.
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	var index int
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.badRequest(w, fmt.Errorf("invalid format for parameter index: %w", err))
		return
	}

	if err := s.Service.RemoveItem(r.Context(), id, index); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("item removed", "document_id", id, "index", index)
	w.WriteHeader(http.StatusNoContent)
}

// Rename handles POST /documents/{id}/rename.
func (s *Server) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	var body RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.badRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	changed, err := s.Service.Rename(r.Context(), id, body.Old, body.New)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RenameResponse{Changed: changed})
}

// Lint handles GET /documents/{id}/lint.
func (s *Server) Lint(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	issues, err := s.Service.Lint(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if issues == nil {
		issues = []ports.LintIssue{}
	}
	s.writeJSON(w, http.StatusOK, issues)
}

// GetGraph handles GET /documents/{id}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	var focus string
	if err := runtime.BindQueryParameter("form", true, false, "focus", r.URL.Query(), &focus); err != nil {
		s.badRequest(w, fmt.Errorf("invalid format for parameter focus: %w", err))
		return
	}

	var (
		out string
		err error
	)
	if fg, ok := s.Service.(focusGrapher); ok && focus != "" {
		out, err = fg.GraphFocus(r.Context(), id, focus)
	} else {
		out, err = s.Service.Graph(r.Context(), id)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

// -- Helpers --

func (s *Server) documentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.badRequest(w, fmt.Errorf("invalid format for parameter id: %w", err))
		return "", false
	}
	return id, true
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrDocumentNotFound), errors.Is(err, logic.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrReadOnly), errors.Is(err, middleware.ErrReadOnlyStore):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrNameInUse):
		return http.StatusConflict
	case errors.Is(err, ports.ErrInvalidName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
