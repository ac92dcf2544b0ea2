package llm

import (
	"encoding/json"
	"testing"

	"github.com/openai/openai-go/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"direct text", DirectText{Text: `{"titolo":"X"}`}, `{"titolo":"X"}`},
		{
			name: "segmented prefers output text",
			resp: SegmentedMessage{
				Segments: []Segment{
					{Kind: SegmentOutputText, Text: "primo"},
					{Kind: SegmentRefusal, Text: "ignored"},
					{Kind: SegmentOutputText, Text: "secondo"},
				},
				Separator: "\n",
			},
			want: "primo\nsecondo",
		},
		{"segmented refusal only", SegmentedMessage{Segments: []Segment{{Kind: SegmentRefusal, Text: "no"}}}, "no"},
		{"opaque returns raw", Opaque{Raw: `{"weird":true}`}, `{"weird":true}`},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.resp))
		})
	}
}

func classifyBody(t *testing.T, body string) Response {
	t.Helper()
	var resp responses.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return ClassifyResponse(&resp)
}

func TestClassifyResponse(t *testing.T) {
	t.Run("output_text field wins", func(t *testing.T) {
		body := `{"output_text":"diretto","output":[{"type":"message","content":[{"type":"output_text","text":"segmento"}]}]}`
		assert.Equal(t, DirectText{Text: "diretto"}, classifyBody(t, body))
	})

	t.Run("message segments", func(t *testing.T) {
		body := `{"output":[
			{"type":"reasoning","summary":[]},
			{"type":"message","content":[{"type":"output_text","text":"a"},{"type":"output_text","text":"b"}]}
		]}`
		resp := classifyBody(t, body)
		assert.IsType(t, SegmentedMessage{}, resp)
		assert.Equal(t, "a\nb", ExtractText(resp))
	})

	t.Run("refusal segment", func(t *testing.T) {
		body := `{"output":[{"type":"message","content":[{"type":"refusal","refusal":"Non posso."}]}]}`
		resp := classifyBody(t, body)
		assert.Equal(t, SegmentedMessage{
			Segments:  []Segment{{Kind: SegmentRefusal, Text: "Non posso."}},
			Separator: "\n",
		}, resp)
		assert.Equal(t, "Non posso.", ExtractText(resp))
	})

	t.Run("unknown shape is opaque", func(t *testing.T) {
		body := `{"id":"resp_1","status":"incomplete"}`
		assert.Equal(t, Opaque{Raw: body}, classifyBody(t, body))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, Opaque{}, ClassifyResponse(nil))
	})
}
