package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/portrait"
	"github.com/aretw0/portrait/internal/logging"
	presentation "github.com/aretw0/portrait/internal/presentation/graph"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/ports"
	"github.com/aretw0/portrait/pkg/runner"
	"github.com/aretw0/portrait/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Server exposes the engine as JSON over HTTP.
type Server struct {
	sessions session.Handler
	turns    session.Handler
	graph    *domain.Graph
	texts    domain.Texts
	streams  *StreamManager
	store    ports.SessionStore
	metrics  http.Handler
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithTexts sets the catalogue used for error messages.
func WithTexts(texts domain.Texts) Option {
	return func(s *Server) {
		s.texts = texts
	}
}

// WithStore lets the mermaid route highlight a user's progress.
func WithStore(store ports.SessionStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithStreams shares a StreamManager with the caller.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.streams = sm
	}
}

// NewHandler creates a new HTTP handler for the engine.
// sessions is usually a session.Manager so that turns of one user never overlap.
func NewHandler(sessions session.Handler, graph *domain.Graph, opts ...Option) http.Handler {
	s := &Server{
		sessions: sessions,
		graph:    graph,
		texts:    domain.DefaultTexts(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.streams == nil {
		s.streams = NewStreamManager(s.logger)
	}
	// Each user's turn and its broadcast run under one lock, so subscribers
	// see views in the order the turns were applied.
	s.turns = session.NewManager(broadcastingHandler{next: s.sessions, streams: s.streams}, session.WithLogger(s.logger))

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(RawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/graph", s.GetGraph)
		r.Get("/graph/branches/{branch}/mermaid", s.GetBranchMermaid)

		r.Route("/users/{user}", func(r chi.Router) {
			r.Post("/start", s.turn(fixed(domain.Start())))
			r.Post("/restart", s.turn(fixed(domain.Restart())))
			r.Post("/back", s.turn(fixed(domain.Back())))
			r.Post("/skip", s.turn(fixed(domain.SkipInterstitial())))
			r.Post("/branches/{branch}", s.turn(func(r *http.Request) (domain.Event, error) {
				branch, err := intParam(r, "branch")
				return domain.StartBranch(branch), err
			}))
			r.Post("/answers/{choice}", s.turn(func(r *http.Request) (domain.Event, error) {
				choice, err := intParam(r, "choice")
				return domain.Answer(choice), err
			}))
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
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
    <title>Portrait API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

type eventFunc func(r *http.Request) (domain.Event, error)

func fixed(ev domain.Event) eventFunc {
	return func(*http.Request) (domain.Event, error) { return ev, nil }
}

// turn runs one engine turn for the user in the path and answers with the view.
func (s *Server) turn(event eventFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userParam(r)
		if err != nil {
			s.writeBadRequest(w, err)
			return
		}
		ev, err := event(r)
		if err != nil {
			s.writeBadRequest(w, err)
			return
		}

		view, err := s.turns.Handle(r.Context(), userID, ev)
		if err != nil {
			s.writeError(w, userID, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// broadcastingHandler publishes every successful view to the user's streams.
type broadcastingHandler struct {
	next    session.Handler
	streams *StreamManager
}

func (h broadcastingHandler) Handle(ctx context.Context, userID string, ev domain.Event) (domain.View, error) {
	view, err := h.next.Handle(ctx, userID, ev)
	if err != nil {
		return view, err
	}
	if payload, err := json.Marshal(view); err == nil {
		h.streams.Broadcast(userID, string(payload))
	}
	return view, nil
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "portrait-http",
		"version":     strings.TrimSpace(portrait.Version),
		"api_version": apiVersion,
	})
}

type branchBody struct {
	ID        int               `json:"id"`
	Questions []domain.Question `json:"questions"`
}

type graphBody struct {
	Branches []branchBody `json:"branches"`
}

// GetGraph handles the GET /v1/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	body := graphBody{Branches: []branchBody{}}
	for _, id := range s.graph.Branches() {
		body.Branches = append(body.Branches, branchBody{ID: id, Questions: s.graph.Questions(id)})
	}
	writeJSON(w, http.StatusOK, body)
}

// GetBranchMermaid handles the GET /v1/graph/branches/{branch}/mermaid request.
func (s *Server) GetBranchMermaid(w http.ResponseWriter, r *http.Request) {
	branch, err := intParam(r, "branch")
	if err != nil {
		s.writeBadRequest(w, err)
		return
	}
	if !s.graph.HasBranch(branch) {
		s.writeError(w, "", domain.NewError(domain.KindQuestionNotFound, "branch %d not found", branch))
		return
	}
	overlay, err := s.overlay(r, branch)
	if err != nil {
		s.writeBadRequest(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, presentation.GenerateMermaid(s.graph, branch, overlay))
}

// overlay returns the progress of the user named by the optional "user"
// query parameter, or nil when there is nothing to highlight.
func (s *Server) overlay(r *http.Request, branch int) (*presentation.GraphOverlay, error) {
	var user string
	if err := runtime.BindQueryParameter("form", true, false, "user", r.URL.Query(), &user); err != nil {
		return nil, fmt.Errorf("invalid format for parameter user: %w", err)
	}
	if user == "" || s.store == nil {
		return nil, nil
	}
	user, err := runner.SanitizeUserID(user)
	if err != nil {
		return nil, err
	}

	sess, err := s.store.Get(r.Context(), user)
	if err != nil || sess.Branch != branch {
		return nil, nil
	}
	return presentation.OverlayFromSession(sess), nil
}

// SubscribeEvents handles the GET /v1/users/{user}/events request (SSE).
// Every view produced for the user is pushed as a "view" event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := userParam(r)
	if err != nil {
		s.writeBadRequest(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe(userID)
	defer cancel()
	s.logger.Info("SSE: Subscribing to view updates", "user_id", userID)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "user_id", userID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: view\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

var pathParam = runtime.BindStyledParameterOptions{
	ParamLocation: runtime.ParamLocationPath,
	Explode:       false,
	Required:      true,
}

func intParam(r *http.Request, name string) (int, error) {
	var v int
	if err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v, pathParam); err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return v, nil
}

func userParam(r *http.Request) (string, error) {
	var user string
	if err := runtime.BindStyledParameterWithOptions("simple", "user", chi.URLParam(r, "user"), &user, pathParam); err != nil {
		return "", fmt.Errorf("invalid format for parameter user: %w", err)
	}
	return runner.SanitizeUserID(user)
}

// ErrorBody is the JSON payload of every failed request.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Reset   bool   `json:"reset"`
}

// StatusFor maps a navigation failure to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindSessionMissing, domain.KindQuestionNotFound:
		return http.StatusNotFound
	case domain.KindInvalidChoice:
		return http.StatusBadRequest
	case domain.KindBackNotAllowed:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, userID string, err error) {
	navErr, ok := domain.AsError(err)
	if !ok {
		s.logger.Error("turn failed", "user_id", userID, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorBody{Kind: "internal", Message: s.texts.GenericFailure})
		return
	}
	writeJSON(w, StatusFor(navErr.Kind), ErrorBody{
		Kind:    string(navErr.Kind),
		Message: s.texts.ErrorMessage(navErr.Kind),
		Detail:  navErr.Message,
		Reset:   navErr.Resets(),
	})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, err error) {
	s.logger.Warn("request rejected", "err", err)
	writeJSON(w, http.StatusBadRequest, ErrorBody{Kind: "bad_request", Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
