// Package mcp exposes the submission pipeline as an MCP server, so
// assistants can fill in and submit the questionnaire over stdio or SSE.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/form"
	"github.com/kdvornichenko/birthday/pkg/schema"
	"github.com/kdvornichenko/birthday/pkg/session"
)

// SessionResult is the unified tool output: the session state plus the
// derived presentation flags.
type SessionResult struct {
	SessionID string                  `json:"session_id" jsonschema_description:"The session identifier"`
	Answers   domain.Answers          `json:"answers" jsonschema_description:"Current answers keyed by field ID"`
	Declining bool                    `json:"declining" jsonschema_description:"Whether the respondent is declining attendance"`
	Disabled  []string                `json:"disabled,omitempty" jsonschema_description:"Fields currently disabled by the declining rule"`
	Notice    domain.Notice           `json:"notice" jsonschema_description:"The submission result notice"`
	Problems  domain.ValidationResult `json:"problems,omitempty" jsonschema_description:"Validation problems per field, present when submission was rejected"`
}

// Server wraps the session manager and exposes it as an MCP Server.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, version string) *Server {
	s := &Server{
		manager:   manager,
		mcpServer: server.NewMCPServer("invite-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

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

// sessionArgs covers the tools operating on one session.
type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

// setFieldArgs covers the set_field tool.
type setFieldArgs struct {
	SessionID string `mapstructure:"session_id"`
	FieldID   string `mapstructure:"field_id"`
	Value     string `mapstructure:"value"`
}

func (s *Server) registerTools() {
	// TOOL: start_session
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start a new questionnaire session initialized with the default answers."),
		mcp.WithOutputSchema[SessionResult](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	// TOOL: get_schema
	schemaTool := mcp.NewTool("get_schema",
		mcp.WithDescription("Get the questionnaire definition: fields, kinds, labels and option values."),
		mcp.WithOutputSchema[SchemaResult](),
	)
	s.mcpServer.AddTool(schemaTool, mcp.NewStructuredToolHandler(s.handleGetSchema))

	// TOOL: get_session
	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Get the current answers and notice of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session identifier")),
		mcp.WithOutputSchema[SessionResult](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetSession))

	// TOOL: set_field
	setTool := mcp.NewTool("set_field",
		mcp.WithDescription("Set one field of the questionnaire. For multi-select fields the value toggles membership."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session identifier")),
		mcp.WithString("field_id", mcp.Required(), mcp.Description("The field to update")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The text input or option value")),
		mcp.WithOutputSchema[SessionResult](),
	)
	s.mcpServer.AddTool(setTool, mcp.NewStructuredToolHandler(s.handleSetField))

	// TOOL: submit_rsvp
	submitTool := mcp.NewTool("submit_rsvp",
		mcp.WithDescription("Validate the answers, compose the message and deliver it. Returns validation problems instead of delivering when the answers are incomplete."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session identifier")),
		mcp.WithOutputSchema[SessionResult](),
	)
	s.mcpServer.AddTool(submitTool, mcp.NewStructuredToolHandler(s.handleSubmit))

	// TOOL: get_result
	resultTool := mcp.NewTool("get_result",
		mcp.WithDescription("Get the delivery notice of the last submission: idle, delivered, or failed with a diagnostic."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session identifier")),
		mcp.WithOutputSchema[domain.Notice](),
	)
	s.mcpServer.AddTool(resultTool, mcp.NewStructuredToolHandler(s.handleGetResult))

	// TOOL: dismiss_result
	dismissTool := mcp.NewTool("dismiss_result",
		mcp.WithDescription("Dismiss the delivery notice, returning it to idle."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session identifier")),
		mcp.WithOutputSchema[SessionResult](),
	)
	s.mcpServer.AddTool(dismissTool, mcp.NewStructuredToolHandler(s.handleDismiss))

	// TOOL: preview_message
	s.mcpServer.AddTool(mcp.NewTool("preview_message",
		mcp.WithDescription("Render the message that would be delivered for the session's current answers, without sending it."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The session identifier")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args sessionArgs
		if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		resp, err := s.manager.Get(ctx, args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get session failed: %v", err)), nil
		}
		return mcp.NewToolResultText(form.Compose(s.manager.Schema(), resp.Answers)), nil
	})
}

// SchemaResult is the questionnaire catalog returned by get_schema.
type SchemaResult struct {
	Lang   string        `json:"lang" jsonschema_description:"Questionnaire language"`
	Fields []SchemaField `json:"fields" jsonschema_description:"Fields in presentation order"`
}

// SchemaField describes one questionnaire field.
type SchemaField struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind" jsonschema_description:"One of text, single, multi, note"`
	Label     string         `json:"label"`
	Required  bool           `json:"required"`
	Exclusive string         `json:"exclusive,omitempty" jsonschema_description:"Option value that clears the rest of a multi selection"`
	Options   []SchemaOption `json:"options,omitempty"`
}

// SchemaOption describes one selectable option.
type SchemaOption struct {
	Value   string `json:"value"`
	Text    string `json:"text"`
	Default bool   `json:"default,omitempty"`
}

// Handler methods for structured tools

func (s *Server) handleGetSchema(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SchemaResult, error) {
	sc := s.manager.Schema()
	result := SchemaResult{Lang: sc.Lang}
	for i := range sc.Fields {
		f := &sc.Fields[i]
		field := SchemaField{
			ID:        f.ID,
			Kind:      string(f.Kind),
			Label:     f.Label,
			Required:  f.Required,
			Exclusive: f.Exclusive,
		}
		for _, o := range f.Options {
			field.Options = append(field.Options, SchemaOption{Value: o.Value, Text: o.Text, Default: o.Default})
		}
		result.Fields = append(result.Fields, field)
	}
	return result, nil
}

func (s *Server) handleGetResult(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Notice, error) {
	var in sessionArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return domain.Notice{}, fmt.Errorf("invalid arguments: %w", err)
	}
	resp, err := s.manager.Get(ctx, in.SessionID)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("get failed: %w", err)
	}
	return resp.Notice, nil
}

func (s *Server) result(resp *domain.Response, problems domain.ValidationResult) SessionResult {
	sc := s.manager.Schema()
	return SessionResult{
		SessionID: resp.ID,
		Answers:   resp.Answers,
		Declining: form.Declining(sc, resp.Answers),
		Disabled:  form.DisabledFields(sc, resp.Answers),
		Notice:    resp.Notice,
		Problems:  problems,
	}
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	resp, err := s.manager.Start(ctx)
	if err != nil {
		return SessionResult{}, fmt.Errorf("start failed: %w", err)
	}
	return s.result(resp, nil), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	var in sessionArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return SessionResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	resp, err := s.manager.Get(ctx, in.SessionID)
	if err != nil {
		return SessionResult{}, fmt.Errorf("get failed: %w", err)
	}
	return s.result(resp, nil), nil
}

func (s *Server) handleSetField(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	var in setFieldArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return SessionResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	resp, err := s.manager.SetField(ctx, in.SessionID, in.FieldID, in.Value)
	if err != nil {
		return SessionResult{}, fmt.Errorf("set field failed: %w", err)
	}
	return s.result(resp, nil), nil
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	var in sessionArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return SessionResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	result, err := s.manager.Submit(ctx, in.SessionID)
	if err != nil {
		return SessionResult{}, fmt.Errorf("submit failed: %w", err)
	}
	return s.result(result.Response, result.Problems), nil
}

func (s *Server) handleDismiss(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	var in sessionArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return SessionResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	resp, err := s.manager.Dismiss(ctx, in.SessionID)
	if err != nil {
		return SessionResult{}, fmt.Errorf("dismiss failed: %w", err)
	}
	return s.result(resp, nil), nil
}

func (s *Server) registerResources() {
	// EXPOSE: invite://schema
	s.mcpServer.AddResource(mcp.NewResource("invite://schema", "Questionnaire Definition",
		mcp.WithMIMEType("application/x-yaml"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := schema.Source(s.manager.Schema().Lang)
		if err != nil {
			return nil, fmt.Errorf("failed to read questionnaire: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "invite://schema",
				MIMEType: "application/x-yaml",
				Text:     string(data),
			},
		}, nil
	})
}
