package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_MissingCredential(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultConfig(), "")

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "anthropic"}, "key")
	assert.Error(t, err)
}

func TestNewClient_OpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultConfig(), "key")
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
	assert.NoError(t, client.Close())
}

func TestUnavailable(t *testing.T) {
	client := Unavailable(ErrMissingCredential)

	text, err := client.Complete(context.Background(), NewRequest("s", "u", "m", 0.3, 1500))
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.NoError(t, client.Close())
}

func TestCompleteWithFallback(t *testing.T) {
	req := NewRequest("system", "user", "gpt-4o-mini", 0.3, 1500)

	t.Run("json mode accepted", func(t *testing.T) {
		var modes []bool
		text, err := completeWithFallback(context.Background(), req, func(_ context.Context, _ *CompletionRequest, jsonMode bool) (string, error) {
			modes = append(modes, jsonMode)
			return "{}", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "{}", text)
		assert.Equal(t, []bool{true}, modes)
	})

	t.Run("json mode rejected retries once as free text", func(t *testing.T) {
		var modes []bool
		text, err := completeWithFallback(context.Background(), req, func(_ context.Context, _ *CompletionRequest, jsonMode bool) (string, error) {
			modes = append(modes, jsonMode)
			if jsonMode {
				return "", ErrJSONModeUnsupported
			}
			return "testo libero", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "testo libero", text)
		assert.Equal(t, []bool{true, false}, modes)
	})

	t.Run("other failures are not retried", func(t *testing.T) {
		calls := 0
		apiErr := &APICallError{Provider: ProviderOpenAI, StatusCode: 401, Message: "invalid key"}
		_, err := completeWithFallback(context.Background(), req, func(context.Context, *CompletionRequest, bool) (string, error) {
			calls++
			return "", apiErr
		})
		assert.Equal(t, 1, calls)
		var target *APICallError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 401, target.StatusCode)
	})
}

func TestIsJSONModeRejection(t *testing.T) {
	assert.True(t, isJSONModeRejection("text.format", "anything"))
	assert.True(t, isJSONModeRejection("", "Invalid value for 'text.format': json_object is not supported with this model."))
	assert.True(t, isJSONModeRejection("", "response_mime_type is not supported"))
	assert.False(t, isJSONModeRejection("input", "Incorrect API key provided"))
}

func TestAPICallError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &APICallError{Provider: ProviderOpenAI, StatusCode: 502, Message: "bad gateway", Cause: cause}

	assert.Equal(t, "API call failed (openai): status 502: bad gateway: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
