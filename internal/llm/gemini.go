package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// generateFunc performs one GenerateContent call.
type generateFunc func(ctx context.Context, req *CompletionRequest, jsonMode bool) (*genai.GenerateContentResponse, error)

// GeminiClient wraps the Gemini API client
type GeminiClient struct {
	client   *genai.Client
	config   *Config
	generate generateFunc
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, &APICallError{Provider: ProviderGemini, Message: "failed to create client", Cause: err}
	}
	c := &GeminiClient{client: client, config: config}
	c.generate = c.generateContent
	return c, nil
}

// Complete implements Client.
func (c *GeminiClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	return completeWithFallback(ctx, req, c.attempt)
}

// Close closes the underlying client
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *GeminiClient) attempt(ctx context.Context, req *CompletionRequest, jsonMode bool) (string, error) {
	resp, err := c.generate(ctx, req, jsonMode)
	if err != nil {
		if jsonMode && geminiJSONModeRejected(err) {
			return "", fmt.Errorf("%w: %v", ErrJSONModeUnsupported, err)
		}
		return "", &APICallError{Provider: ProviderGemini, Message: "generation failed", Cause: err}
	}

	return ExtractText(classifyGemini(resp)), nil
}

func (c *GeminiClient) generateContent(ctx context.Context, req *CompletionRequest, jsonMode bool) (*genai.GenerateContentResponse, error) {
	model := c.client.GenerativeModel(c.config.ResolveModel(req.Model))
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	if jsonMode {
		model.ResponseMIMEType = "application/json"
	}

	return model.GenerateContent(ctx, genai.Text(req.UserPrompt))
}

// geminiJSONModeRejected reports whether err is the API refusing the JSON response MIME type.
// Structured API errors must be a 400 to count; other errors are judged by their text.
func geminiJSONModeRejected(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusBadRequest && isJSONModeRejection("", gerr.Message)
	}
	return isJSONModeRejection("", err.Error())
}

// classifyGemini maps a Gemini reply onto the Response variants.
// Text parts of the first candidate are continuation chunks and join without a separator.
func classifyGemini(resp *genai.GenerateContentResponse) Response {
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		var segments []Segment
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				segments = append(segments, Segment{Kind: SegmentOutputText, Text: string(text)})
			}
		}
		if len(segments) > 0 {
			return SegmentedMessage{Segments: segments}
		}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return Opaque{Raw: fmt.Sprintf("%+v", resp)}
	}
	return Opaque{Raw: string(raw)}
}
