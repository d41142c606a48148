package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_ShapeSelection(t *testing.T) {
	completions, err := New(Config{Name: "openai", Endpoint: "http://x", WireShape: ShapeCompletions})
	require.NoError(t, err)
	require.IsType(t, &completionsClient{}, completions)

	messages, err := New(Config{Name: "anthropic", Endpoint: "http://x", WireShape: ShapeMessages})
	require.NoError(t, err)
	require.IsType(t, &messagesClient{}, messages)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Config{Name: "p", Endpoint: "http://x", WireShape: "grpc"})
	require.Error(t, err)

	_, err = New(Config{Name: "p", WireShape: ShapeCompletions})
	require.Error(t, err)
}

func TestNew_MissingCredentialIsNotFatal(t *testing.T) {
	p, err := New(Config{Name: "openai", Endpoint: "http://x", WireShape: ShapeCompletions})
	require.NoError(t, err)
	require.False(t, p.HasCredential())

	p, err = New(Config{Name: "openai", Endpoint: "http://x", WireShape: ShapeCompletions, APIKey: "sk-1"})
	require.NoError(t, err)
	require.True(t, p.HasCredential())
}

func TestCompletionsClient_Chat(t *testing.T) {
	var gotAuth string
	var gotBody completionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello from the model"}}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{
		Name: "openai", Endpoint: srv.URL, Model: "gpt-test",
		WireShape: ShapeCompletions, APIKey: "sk-test",
	})
	require.NoError(t, err)

	out, err := p.Chat(context.Background(), "be helpful", "say hello")
	require.NoError(t, err)
	require.Equal(t, "hello from the model", out)
	require.Equal(t, "Bearer sk-test", gotAuth)

	// Both roles share one messages array.
	require.Len(t, gotBody.Messages, 2)
	require.Equal(t, "system", gotBody.Messages[0].Role)
	require.Equal(t, "be helpful", gotBody.Messages[0].Content)
	require.Equal(t, "user", gotBody.Messages[1].Role)
	require.Equal(t, "gpt-test", gotBody.Model)
}

func TestMessagesClient_Chat(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello from claude"}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{
		Name: "anthropic", Endpoint: srv.URL, Model: "claude-test",
		WireShape: ShapeMessages, APIKey: "ak-test",
	})
	require.NoError(t, err)

	out, err := p.Chat(context.Background(), "be helpful", "say hello")
	require.NoError(t, err)
	require.Equal(t, "hello from claude", out)
	require.Equal(t, "ak-test", gotKey)
	require.Equal(t, anthropicVersion, gotVersion)

	// The system prompt travels in its own field.
	require.Equal(t, "be helpful", gotBody.System)
	require.Len(t, gotBody.Messages, 1)
	require.Equal(t, "user", gotBody.Messages[0].Role)
	require.NotZero(t, gotBody.MaxTokens)
}

func TestChat_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	for _, shape := range []WireShape{ShapeCompletions, ShapeMessages} {
		p, err := New(Config{Name: "p", Endpoint: srv.URL, WireShape: shape})
		require.NoError(t, err)
		_, err = p.Chat(context.Background(), "s", "u")
		var authErr *AuthError
		require.True(t, errors.As(err, &authErr), "shape %s: got %v", shape, err)
		require.Equal(t, http.StatusUnauthorized, authErr.Status)
	}
}

func TestChat_NetworkErrorOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p, err := New(Config{Name: "p", Endpoint: srv.URL, WireShape: ShapeCompletions})
	require.NoError(t, err)
	_, err = p.Chat(context.Background(), "s", "u")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	require.Equal(t, http.StatusServiceUnavailable, netErr.Status)
}

func TestChat_TimeoutErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	defer srv.Close()

	p, err := New(Config{
		Name: "p", Endpoint: srv.URL, WireShape: ShapeCompletions,
		Timeout: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), "s", "u")
	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "got %v", err)
	var netErr *NetworkError
	require.False(t, errors.As(err, &netErr))
}

func TestChat_TimeoutDuringBodyReadIsTimeout(t *testing.T) {
	// The deadline can expire after headers arrive but before the body
	// finishes; that must still classify as a timeout, not a malformed
	// response.
	for _, shape := range []WireShape{ShapeCompletions, ShapeMessages} {
		t.Run(string(shape), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"cho`))
				w.(http.Flusher).Flush()
				time.Sleep(300 * time.Millisecond)
			}))
			defer srv.Close()

			p, err := New(Config{
				Name: "p", Endpoint: srv.URL, WireShape: shape,
				Timeout: 50 * time.Millisecond,
			})
			require.NoError(t, err)

			_, err = p.Chat(context.Background(), "s", "u")
			var timeoutErr *TimeoutError
			require.True(t, errors.As(err, &timeoutErr), "got %v", err)
			var malformedErr *MalformedResponseError
			require.False(t, errors.As(err, &malformedErr))
		})
	}
}

func TestChat_MalformedResponse(t *testing.T) {
	tests := []struct {
		name  string
		shape WireShape
		body  string
	}{
		{"completions empty choices", ShapeCompletions, `{"choices":[]}`},
		{"completions not json", ShapeCompletions, `<html>oops</html>`},
		{"messages no text block", ShapeMessages, `{"content":[{"type":"tool_use"}]}`},
		{"messages not json", ShapeMessages, `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, err := New(Config{Name: "p", Endpoint: srv.URL, WireShape: tt.shape})
			require.NoError(t, err)
			_, err = p.Chat(context.Background(), "s", "u")
			var malformed *MalformedResponseError
			require.True(t, errors.As(err, &malformed), "got %v", err)
		})
	}
}

func TestStub_RecordsCalls(t *testing.T) {
	s := &Stub{Replies: []string{"first", "second"}}
	out, err := s.Chat(context.Background(), "sys", "one")
	require.NoError(t, err)
	require.Equal(t, "first", out)

	out, err = s.Chat(context.Background(), "sys", "two")
	require.NoError(t, err)
	require.Equal(t, "second", out)

	// Last reply repeats once exhausted.
	out, err = s.Chat(context.Background(), "sys", "three")
	require.NoError(t, err)
	require.Equal(t, "second", out)

	require.Equal(t, 3, s.Calls)
	require.Equal(t, "three", s.LastUser)
}
