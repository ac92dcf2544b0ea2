package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func textReply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}},
		}},
	}
}

// newStubGeminiClient returns a client whose calls are answered by generate.
func newStubGeminiClient(generate generateFunc) *GeminiClient {
	return &GeminiClient{config: DefaultGeminiConfig(), generate: generate}
}

func TestClassifyGemini(t *testing.T) {
	t.Run("text parts concatenate", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"titolo":`), genai.Text(`"X"}`)}},
			}},
		}
		got := classifyGemini(resp)
		assert.IsType(t, SegmentedMessage{}, got)
		assert.Equal(t, `{"titolo":"X"}`, ExtractText(got))
	})

	t.Run("no candidates is opaque", func(t *testing.T) {
		got := classifyGemini(&genai.GenerateContentResponse{})
		assert.IsType(t, Opaque{}, got)
		assert.NotEmpty(t, ExtractText(got))
	})
}

func TestGeminiJSONModeRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "400 naming the mime type",
			err:  &googleapi.Error{Code: http.StatusBadRequest, Message: "response_mime_type is not supported by this model"},
			want: true,
		},
		{
			name: "400 about something else",
			err:  &googleapi.Error{Code: http.StatusBadRequest, Message: "API key not valid"},
			want: false,
		},
		{
			name: "500 naming the mime type",
			err:  &googleapi.Error{Code: http.StatusInternalServerError, Message: "response_mime_type backend failure"},
			want: false,
		},
		{
			name: "wrapped api error",
			err:  errors.Join(errors.New("call failed"), &googleapi.Error{Code: http.StatusBadRequest, Message: "JSON mode is not enabled for models/gemini-pro"}),
			want: true,
		},
		{name: "plain error text", err: errors.New("responseMimeType unsupported"), want: true},
		{name: "plain unrelated error", err: errors.New("connection reset"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geminiJSONModeRejected(tt.err))
		})
	}
}

func TestGeminiClient_JSONModeFallback(t *testing.T) {
	var modes []bool
	client := newStubGeminiClient(func(ctx context.Context, req *CompletionRequest, jsonMode bool) (*genai.GenerateContentResponse, error) {
		modes = append(modes, jsonMode)
		if jsonMode {
			return nil, &googleapi.Error{Code: http.StatusBadRequest, Message: "JSON mode is not enabled for this model"}
		}
		return textReply("testo libero"), nil
	})

	text, err := client.Complete(context.Background(), NewRequest("s", "u", "", 0.3, 1500))
	require.NoError(t, err)
	assert.Equal(t, "testo libero", text)
	assert.Equal(t, []bool{true, false}, modes)
}

func TestGeminiClient_Failure(t *testing.T) {
	calls := 0
	client := newStubGeminiClient(func(ctx context.Context, req *CompletionRequest, jsonMode bool) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, &googleapi.Error{Code: http.StatusForbidden, Message: "API key not valid"}
	})

	_, err := client.Complete(context.Background(), NewRequest("s", "u", "", 0.3, 1500))

	var apiErr *APICallError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ProviderGemini, apiErr.Provider)
	assert.False(t, errors.Is(err, ErrJSONModeUnsupported))
	assert.Equal(t, 1, calls)
}

func TestGeminiClient_JSONModeSuccess(t *testing.T) {
	client := newStubGeminiClient(func(ctx context.Context, req *CompletionRequest, jsonMode bool) (*genai.GenerateContentResponse, error) {
		assert.True(t, jsonMode)
		assert.Equal(t, "bozza", req.UserPrompt)
		return textReply(`{"titolo":"X"}`), nil
	})

	text, err := client.Complete(context.Background(), NewRequest("s", "bozza", "", 0.3, 1500))
	require.NoError(t, err)
	assert.Equal(t, `{"titolo":"X"}`, text)
	assert.NoError(t, client.Close())
}
