package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/portrait"
	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/runner"
	"github.com/aretw0/portrait/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the question graph.
const GraphURI = "portrait://graph"

// TurnArgs are the arguments shared by every turn tool.
type TurnArgs struct {
	UserID string `json:"user_id"`
	Branch int    `json:"branch,omitempty"`
	Choice int    `json:"choice,omitempty"`
}

// ErrorInfo describes a navigation failure.
type ErrorInfo struct {
	Kind    string `json:"kind" jsonschema_description:"Failure kind"`
	Message string `json:"message" jsonschema_description:"User-facing message"`
	Reset   bool   `json:"reset" jsonschema_description:"True when the session was discarded and start must be called again"`
}

// TurnResponse is the structured result of every turn tool.
// Exactly one of View and Error is set.
type TurnResponse struct {
	View  *domain.View `json:"view,omitempty" jsonschema_description:"The view to present to the user"`
	Error *ErrorInfo   `json:"error,omitempty" jsonschema_description:"Set when the turn was rejected"`
}

// Server exposes the questionnaire as an MCP Server.
type Server struct {
	sessions  session.Handler
	graph     *domain.Graph
	texts     domain.Texts
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTexts sets the catalogue used for error messages.
func WithTexts(texts domain.Texts) Option {
	return func(s *Server) {
		s.texts = texts
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions session.Handler, graph *domain.Graph, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		graph:     graph,
		texts:     domain.DefaultTexts(),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("portrait-mcp", strings.TrimSpace(portrait.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on addr using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	userID := mcp.WithString("user_id", mcp.Required(), mcp.Description("Stable identifier of the user taking the questionnaire"))

	tools := []struct {
		tool  mcp.Tool
		event func(TurnArgs) domain.Event
	}{
		{
			mcp.NewTool("start",
				mcp.WithDescription("Open a fresh session and return the welcome screen with the entry branches."),
				userID, mcp.WithOutputSchema[TurnResponse]()),
			func(TurnArgs) domain.Event { return domain.Start() },
		},
		{
			mcp.NewTool("start_branch",
				mcp.WithDescription("Begin a questionnaire branch and return its first question."),
				userID,
				mcp.WithNumber("branch", mcp.Required(), mcp.Description("Branch id taken from the welcome screen")),
				mcp.WithOutputSchema[TurnResponse]()),
			func(a TurnArgs) domain.Event { return domain.StartBranch(a.Branch) },
		},
		{
			mcp.NewTool("answer",
				mcp.WithDescription("Answer the current question with one of its option choices."),
				userID,
				mcp.WithNumber("choice", mcp.Required(), mcp.Description("Choice id of the selected option")),
				mcp.WithOutputSchema[TurnResponse]()),
			func(a TurnArgs) domain.Event { return domain.Answer(a.Choice) },
		},
		{
			mcp.NewTool("back",
				mcp.WithDescription("Return to the previous question."),
				userID, mcp.WithOutputSchema[TurnResponse]()),
			func(TurnArgs) domain.Event { return domain.Back() },
		},
		{
			mcp.NewTool("restart",
				mcp.WithDescription("Drop the session and return the welcome screen."),
				userID, mcp.WithOutputSchema[TurnResponse]()),
			func(TurnArgs) domain.Event { return domain.Restart() },
		},
		{
			mcp.NewTool("skip_interstitial",
				mcp.WithDescription("Leave the interstitial screen and return the result."),
				userID, mcp.WithOutputSchema[TurnResponse]()),
			func(TurnArgs) domain.Event { return domain.SkipInterstitial() },
		},
	}

	for _, t := range tools {
		s.mcpServer.AddTool(t.tool, mcp.NewStructuredToolHandler(s.turn(t.event)))
	}
}

// turn builds the handler of one turn tool. Navigation failures are part
// of the structured response; only infrastructure failures are tool errors.
func (s *Server) turn(event func(TurnArgs) domain.Event) func(context.Context, mcp.CallToolRequest, TurnArgs) (TurnResponse, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args TurnArgs) (TurnResponse, error) {
		userID, err := runner.SanitizeUserID(args.UserID)
		if err != nil {
			s.logger.Warn("MCP: user_id rejected", "err", err, "size", len(args.UserID))
			return TurnResponse{}, fmt.Errorf("user_id rejected: %w", err)
		}

		ev := event(args)
		view, err := s.sessions.Handle(ctx, userID, ev)
		if err != nil {
			navErr, ok := domain.AsError(err)
			if !ok {
				return TurnResponse{}, fmt.Errorf("%s failed: %w", ev.Type, err)
			}
			return TurnResponse{Error: &ErrorInfo{
				Kind:    string(navErr.Kind),
				Message: s.texts.ErrorMessage(navErr.Kind),
				Reset:   navErr.Resets(),
			}}, nil
		}
		return TurnResponse{View: &view}, nil
	}
}

type graphDocument struct {
	Branches []graphBranch `json:"branches"`
}

type graphBranch struct {
	ID        int               `json:"id"`
	Questions []domain.Question `json:"questions"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Questionnaire Graph",
		mcp.WithResourceDescription("All branches with their questions and options"),
		mcp.WithMIMEType("application/json"),
	), s.readGraph)
}

func (s *Server) readGraph(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc := graphDocument{Branches: []graphBranch{}}
	for _, id := range s.graph.Branches() {
		doc.Branches = append(doc.Branches, graphBranch{ID: id, Questions: s.graph.Questions(id)})
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
