package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"celestial-relay/api/internal/celestial"
	"celestial-relay/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Identify runs the same two-message prompt through Gemini function calling.
func (e *Engine) Identify(ctx context.Context, in celestial.IdentifyRequest) (celestial.Info, error) {
	if e.APIKey == "" {
		return celestial.Info{}, errors.New("gemini: API key not set")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return celestial.Info{}, mapErr(err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return celestial.Info{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(celestial.SystemPrompt)},
	}
	m.Tools = []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{declaration()}}}
	m.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingAny,
			AllowedFunctionNames: []string{celestial.ToolName},
		},
	}

	var parts []genai.Part
	if in.Type == celestial.InputImage {
		imgBytes, mimeHint, derr := util.DecodeBase64MaybeDataURL(in.Image)
		if derr != nil || len(imgBytes) == 0 {
			return celestial.Info{}, errors.New("gemini: invalid image payload")
		}
		parts = []genai.Part{
			genai.Text(celestial.ImageInstruction),
			&genai.Blob{MIMEType: util.PickMIME("", mimeHint, imgBytes), Data: imgBytes},
		}
	} else {
		parts = []genai.Part{genai.Text(celestial.TextInstruction(in.Query))}
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return celestial.Info{}, mapErr(err)
	}

	if fc, ok := firstFunctionCall(resp); ok {
		raw, merr := json.Marshal(fc.Args)
		if merr != nil {
			return celestial.Info{}, fmt.Errorf("gemini: bad function args: %w", merr)
		}
		return celestial.ParseInfo(raw)
	}

	// Some models answer with JSON text despite forced function calling.
	txt := util.StripCodeFences(firstText(resp))
	if txt == "" {
		return celestial.Info{}, errors.New("gemini: no structured function call in response")
	}
	return celestial.ParseInfo([]byte(txt))
}

func declaration() *genai.FunctionDeclaration {
	props := make(map[string]*genai.Schema, len(celestial.Fields))
	for _, f := range celestial.Fields {
		props[f] = &genai.Schema{Type: genai.TypeString, Description: celestial.FieldDescription(f)}
	}
	return &genai.FunctionDeclaration{
		Name:        celestial.ToolName,
		Description: celestial.ToolDescription,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   celestial.Fields,
		},
	}
}

func mapErr(err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		switch ge.Code {
		case http.StatusTooManyRequests:
			return celestial.ErrRateLimited
		case http.StatusPaymentRequired:
			return celestial.ErrPaymentRequired
		}
		return &celestial.UpstreamError{StatusCode: ge.Code, Body: ge.Message}
	}
	return err
}

func firstFunctionCall(resp *genai.GenerateContentResponse) (genai.FunctionCall, bool) {
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if fc, ok := p.(genai.FunctionCall); ok {
				return fc, true
			}
		}
	}
	return genai.FunctionCall{}, false
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
