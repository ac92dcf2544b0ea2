package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// OpenAIClient talks to the OpenAI Responses API.
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates an OpenAI client. SDK retries are disabled: every attempt is
// exactly one HTTP call.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(apiKey),
		oaoption.WithMaxRetries(0),
		oaoption.WithRequestTimeout(2 * time.Minute),
	}
	if config.BaseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(config.BaseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		config: config,
	}, nil
}

// Complete implements Client.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	return completeWithFallback(ctx, req, c.attempt)
}

// Close implements Client.
func (c *OpenAIClient) Close() error {
	return nil
}

func (c *OpenAIClient) newParams(req *CompletionRequest, jsonMode bool) responses.ResponseNewParams {
	params := responses.ResponseNewParams{
		Model: c.config.ResolveModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(req.SystemPrompt, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(req.UserPrompt, responses.EasyInputMessageRoleUser),
			},
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(req.MaxTokens))
	}
	if jsonMode {
		format := shared.NewResponseFormatJSONObjectParam()
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{OfJSONObject: &format},
		}
	}
	return params
}

func (c *OpenAIClient) attempt(ctx context.Context, req *CompletionRequest, jsonMode bool) (string, error) {
	resp, err := c.client.Responses.New(ctx, c.newParams(req, jsonMode))
	if err != nil {
		return "", openAIError(err, jsonMode)
	}
	return ExtractText(ClassifyResponse(resp)), nil
}

// openAIError converts an SDK failure into ErrJSONModeUnsupported or an *APICallError.
func openAIError(err error, jsonMode bool) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &APICallError{Provider: ProviderOpenAI, Message: "request failed", Cause: err}
	}

	message := apiErr.Message
	if message == "" {
		message = http.StatusText(apiErr.StatusCode)
	}
	if jsonMode && apiErr.StatusCode == http.StatusBadRequest && isJSONModeRejection(apiErr.Param, message) {
		return fmt.Errorf("%w: %s", ErrJSONModeUnsupported, message)
	}
	return &APICallError{Provider: ProviderOpenAI, StatusCode: apiErr.StatusCode, Message: message}
}
