package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRPC(t *testing.T, srv *Server, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestInitialize(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())

	_, resp := postRPC(t, srv, `{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": {}}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])

	info, ok := result["serverInfo"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sfbridge", info["name"])
}

func TestPing(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())

	_, resp := postRPC(t, srv, `{"jsonrpc": "2.0", "id": "p1", "method": "ping"}`)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "p1", resp.ID)
}

func TestMethodNotFound(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())

	_, resp := postRPC(t, srv, `{"jsonrpc": "2.0", "id": 7, "method": "no/such"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrMethodNotFound, resp.Error.Code)
}

func TestNotificationGetsNoBody(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())

	rec, _ := postRPC(t, srv, `{"jsonrpc": "2.0", "method": "notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestParseError(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())

	_, resp := postRPC(t, srv, `{not json`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrParse, resp.Error.Code)
}

func TestHandlerErrorShapes(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())
	srv.Register("fail/mcp", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return nil, &Error{Code: ErrInvalidParams, Message: "bad params"}
	})
	srv.Register("fail/plain", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return nil, assert.AnError
	})

	_, resp := postRPC(t, srv, `{"jsonrpc": "2.0", "id": 1, "method": "fail/mcp"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrInvalidParams, resp.Error.Code)
	assert.Equal(t, "bad params", resp.Error.Message)

	_, resp = postRPC(t, srv, `{"jsonrpc": "2.0", "id": 2, "method": "fail/plain"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrInternal, resp.Error.Code)
}

func TestNonPostRejected(t *testing.T) {
	srv := NewServer("sfbridge", "0.3.0", zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
