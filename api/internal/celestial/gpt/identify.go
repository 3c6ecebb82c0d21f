package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"celestial-relay/api/internal/celestial"
	"celestial-relay/api/internal/util"
)

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageURL struct {
	URL string `json:"url"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Type     string `json:"type"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func (cr *chatResponse) toolArguments(name string) (string, error) {
	if len(cr.Choices) == 0 {
		return "", errors.New("gpt: no choices in response")
	}
	for _, tc := range cr.Choices[0].Message.ToolCalls {
		if tc.Function.Name == name {
			return tc.Function.Arguments, nil
		}
	}
	return "", errors.New("gpt: no structured tool call in response")
}

// Identify sends a two-message prompt to the chat-completions gateway with
// the celestial_info tool forced and parses the tool arguments.
func (e *Engine) Identify(ctx context.Context, in celestial.IdentifyRequest) (celestial.Info, error) {
	if e.APIKey == "" {
		return celestial.Info{}, errors.New("gpt: API key not set")
	}

	var userContent any
	if in.Type == celestial.InputImage {
		imgBytes, mimeHint, err := util.DecodeBase64MaybeDataURL(in.Image)
		if err != nil || len(imgBytes) == 0 {
			return celestial.Info{}, errors.New("gpt: invalid image payload")
		}
		mime := util.PickMIME("", mimeHint, imgBytes)
		if !isSupportedImageMIME(mime) {
			return celestial.Info{}, fmt.Errorf("gpt: unsupported image MIME %s (need image/jpeg|png|webp)", mime)
		}
		userContent = []any{
			textContent{Type: "text", Text: celestial.ImageInstruction},
			imageContent{Type: "image_url", ImageURL: imageURL{URL: encodeDataURL(mime, imgBytes)}},
		}
	} else {
		userContent = celestial.TextInstruction(in.Query)
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []message{
			{Role: "system", Content: celestial.SystemPrompt},
			{Role: "user", Content: userContent},
		},
		"tools": []any{
			map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        celestial.ToolName,
					"description": celestial.ToolDescription,
					"parameters":  celestial.Schema(),
				},
			},
		},
		"tool_choice": map[string]any{
			"type":     "function",
			"function": map[string]any{"name": celestial.ToolName},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return celestial.Info{}, fmt.Errorf("gpt: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return celestial.Info{}, fmt.Errorf("gpt: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	start := time.Now()
	resp, err := e.httpc.Do(req)
	if err != nil {
		return celestial.Info{}, fmt.Errorf("gpt: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("gpt identify (%s): %d ms", in.Type, time.Since(start).Milliseconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return celestial.Info{}, fmt.Errorf("gpt: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return celestial.Info{}, celestial.ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return celestial.Info{}, celestial.ErrPaymentRequired
	case resp.StatusCode != http.StatusOK:
		return celestial.Info{}, &celestial.UpstreamError{StatusCode: resp.StatusCode, Body: truncateBytes(raw, 512)}
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return celestial.Info{}, fmt.Errorf("gpt: bad response JSON: %w", err)
	}
	args, err := cr.toolArguments(celestial.ToolName)
	if err != nil {
		return celestial.Info{}, err
	}
	return celestial.ParseInfo([]byte(args))
}
