package gpt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celestial-relay/api/internal/celestial"
)

const argsJSON = `{
	"name": "Halley's Comet", "type": "comet",
	"description": "A short-period comet.", "distance": "0.59 AU at perihelion",
	"orbit": "Elliptical orbit around the Sun", "moons": "none",
	"size": "15 by 8 kilometers", "composition": "Ice and dust",
	"special": "Visible to the naked eye", "notes": "Returns every 72-80 years."
}`

// toolCallBody wraps tool arguments in a chat-completions response envelope.
func toolCallBody(name, args string) string {
	env := map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"tool_calls": []any{
						map[string]any{
							"type": "function",
							"function": map[string]any{
								"name":      name,
								"arguments": args,
							},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(env)
	return string(b)
}

func newFakeGateway(t *testing.T, status int, body string, captured *[]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			b, _ := io.ReadAll(r.Body)
			*captured = b
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

// tiny PNG signature; enough for MIME sniffing, not a real image
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestIdentify_TextPrompt(t *testing.T) {
	var captured []byte
	srv := newFakeGateway(t, http.StatusOK, toolCallBody(celestial.ToolName, argsJSON), &captured)
	defer srv.Close()

	e := New("test-key", "gpt-4o-mini").WithEndpoint(srv.URL)
	info, err := e.Identify(context.Background(), celestial.IdentifyRequest{
		Type:  celestial.InputText,
		Query: "Halley's Comet",
	})
	require.NoError(t, err)
	assert.Equal(t, "Halley's Comet", info.Name)
	assert.Equal(t, "comet", info.Type)
	assert.Equal(t, "Returns every 72-80 years.", info.Notes)

	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
		ToolChoice struct {
			Type     string `json:"type"`
			Function struct {
				Name string `json:"name"`
			} `json:"function"`
		} `json:"tool_choice"`
		Tools []struct {
			Type     string `json:"type"`
			Function struct {
				Name       string         `json:"name"`
				Parameters map[string]any `json:"parameters"`
			} `json:"function"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(captured, &req))

	assert.Equal(t, "gpt-4o-mini", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Role)

	// text-only path: user content is a plain string naming the query
	var userText string
	require.NoError(t, json.Unmarshal(req.Messages[1].Content, &userText))
	assert.Contains(t, userText, "Halley's Comet")

	require.Len(t, req.Tools, 1)
	assert.Equal(t, celestial.ToolName, req.Tools[0].Function.Name)
	assert.Equal(t, false, req.Tools[0].Function.Parameters["additionalProperties"])
	assert.Equal(t, "function", req.ToolChoice.Type)
	assert.Equal(t, celestial.ToolName, req.ToolChoice.Function.Name)
}

func TestIdentify_ImagePrompt(t *testing.T) {
	var captured []byte
	srv := newFakeGateway(t, http.StatusOK, toolCallBody(celestial.ToolName, argsJSON), &captured)
	defer srv.Close()

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	e := New("test-key", "gpt-4o-mini").WithEndpoint(srv.URL)
	_, err := e.Identify(context.Background(), celestial.IdentifyRequest{
		Type:  celestial.InputImage,
		Image: dataURL,
	})
	require.NoError(t, err)

	var req struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(captured, &req))
	require.Len(t, req.Messages, 2)

	// multimodal path: user content is a parts array with an image_url entry
	var parts []struct {
		Type     string `json:"type"`
		Text     string `json:"text"`
		ImageURL struct {
			URL string `json:"url"`
		} `json:"image_url"`
	}
	require.NoError(t, json.Unmarshal(req.Messages[1].Content, &parts))
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, "image_url", parts[1].Type)
	assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,"))
}

func TestIdentify_RawBase64Image(t *testing.T) {
	srv := newFakeGateway(t, http.StatusOK, toolCallBody(celestial.ToolName, argsJSON), nil)
	defer srv.Close()

	e := New("test-key", "gpt-4o-mini").WithEndpoint(srv.URL)
	_, err := e.Identify(context.Background(), celestial.IdentifyRequest{
		Type:  celestial.InputImage,
		Image: base64.StdEncoding.EncodeToString(pngBytes),
	})
	assert.NoError(t, err)
}

func TestIdentify_UpstreamStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, celestial.ErrRateLimited)
		}},
		{"payment required", http.StatusPaymentRequired, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, celestial.ErrPaymentRequired)
		}},
		{"service unavailable", http.StatusServiceUnavailable, func(t *testing.T, err error) {
			var ue *celestial.UpstreamError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, http.StatusServiceUnavailable, ue.StatusCode)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeGateway(t, tt.status, `{"error":{"message":"nope"}}`, nil)
			defer srv.Close()

			e := New("test-key", "gpt-4o-mini").WithEndpoint(srv.URL)
			_, err := e.Identify(context.Background(), celestial.IdentifyRequest{
				Type:  celestial.InputText,
				Query: "Vega",
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestIdentify_MalformedUpstream(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"no tool call", `{"choices":[{"message":{"content":"Jupiter is a planet."}}]}`},
		{"wrong tool name", toolCallBody("other_tool", argsJSON)},
		{"unparseable arguments", toolCallBody(celestial.ToolName, "not json")},
		{"missing field", toolCallBody(celestial.ToolName, `{"name":"Vega","type":"star"}`)},
		{"not JSON at all", "<html>gateway error</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeGateway(t, http.StatusOK, tt.body, nil)
			defer srv.Close()

			e := New("test-key", "gpt-4o-mini").WithEndpoint(srv.URL)
			_, err := e.Identify(context.Background(), celestial.IdentifyRequest{
				Type:  celestial.InputText,
				Query: "Vega",
			})
			assert.Error(t, err)
		})
	}
}

func TestIdentify_NoAPIKey(t *testing.T) {
	e := New("", "gpt-4o-mini")
	_, err := e.Identify(context.Background(), celestial.IdentifyRequest{
		Type:  celestial.InputText,
		Query: "Vega",
	})
	assert.Error(t, err)
}

func TestIdentify_BadImagePayload(t *testing.T) {
	e := New("test-key", "gpt-4o-mini")
	_, err := e.Identify(context.Background(), celestial.IdentifyRequest{
		Type:  celestial.InputImage,
		Image: "@@not-base64@@",
	})
	assert.Error(t, err)
}
