package gpt

import (
	"encoding/base64"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

type Engine struct {
	APIKey   string
	Model    string
	Endpoint string
	httpc    *http.Client
}

func New(key, model string) *Engine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // TCP connect
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}

	return &Engine{
		APIKey:   key,
		Model:    model,
		Endpoint: defaultEndpoint,
		// Timeout=0: the request context bounds the call, not the client.
		httpc: &http.Client{
			Timeout:   0,
			Transport: tr,
		},
	}
}

// WithEndpoint points the engine at a different chat-completions gateway.
// An empty URL keeps the default.
func (e *Engine) WithEndpoint(url string) *Engine {
	if strings.TrimSpace(url) != "" {
		e.Endpoint = url
	}
	return e
}

// WithHTTPClient overrides the internal HTTP client (e.g., for custom
// timeouts or tracing).
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func truncateBytes(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

func isSupportedImageMIME(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	switch m {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}

func encodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
