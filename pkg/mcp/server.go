package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// HandlerFunc matches the signature of an MCP method handler
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Server is a generic MCP server speaking JSON-RPC 2.0 over HTTP POST.
type Server struct {
	name     string
	version  string
	handlers map[string]HandlerFunc
	logger   zerolog.Logger
	mu       sync.RWMutex
}

// NewServer creates a new MCP Server. The initialize and ping methods are
// pre-registered; everything else is added via Register.
func NewServer(name, version string, logger zerolog.Logger) *Server {
	s := &Server{
		name:     name,
		version:  version,
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
	s.Register("initialize", s.handleInitialize)
	s.Register("ping", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return map[string]interface{}{}, nil
	})
	return s
}

// Register registers a handler for a specific tool/method
func (s *Server) Register(method string, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = handler
}

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    Capabilities{Tools: map[string]interface{}{}},
		ServerInfo:      ServerInfo{Name: s.name, Version: s.version},
	}, nil
}

// ServeHTTP handles MCP over HTTP (POST JSON-RPC). Notifications are
// acknowledged with 202 and no body.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, nil, ErrParse, "Parse error")
		return
	}
	defer r.Body.Close()

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, nil, ErrParse, "Parse error")
		return
	}

	if req.IsNotification() {
		s.logger.Debug().Str("method", req.Method).Msg("notification received")
		w.WriteHeader(http.StatusAccepted)
		return
	}

	resp := s.handleRequest(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleRequest(ctx context.Context, req Request) Response {
	s.mu.RLock()
	handler, ok := s.handlers[req.Method]
	s.mu.RUnlock()

	if !ok {
		return Response{
			JSONRPC: JSONRPCVersion,
			ID:      req.ID,
			Error:   &Error{Code: ErrMethodNotFound, Message: "Method not found"},
		}
	}

	s.logger.Debug().Str("method", req.Method).Msg("dispatching request")

	result, err := handler(ctx, req.Params)
	if err != nil {
		// If the error is already a standardized MCP error, use it
		if mcpErr, ok := err.(*Error); ok {
			return Response{
				JSONRPC: JSONRPCVersion,
				ID:      req.ID,
				Error:   mcpErr,
			}
		}
		// Otherwise generic internal error
		s.logger.Error().Err(err).Str("method", req.Method).Msg("internal error")
		return Response{
			JSONRPC: JSONRPCVersion,
			ID:      req.ID,
			Error:   &Error{Code: ErrInternal, Message: fmt.Sprintf("Internal error: %v", err)},
		}
	}

	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      req.ID,
		Result:  result,
	}
}

func (s *Server) writeError(w http.ResponseWriter, id interface{}, code int, msg string) {
	resp := Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &Error{Code: code, Message: msg},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK) // JSON-RPC errors are 200 OK HTTP
	json.NewEncoder(w).Encode(resp)
}
