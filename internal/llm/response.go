package llm

import (
	"encoding/json"
	"strings"

	"github.com/openai/openai-go/responses"
)

// Response is the provider reply, classified into one of the known variants:
// DirectText, SegmentedMessage or Opaque.
type Response interface {
	isResponse()
}

// DirectText is a reply exposing its text as a single top-level field.
type DirectText struct {
	Text string
}

// SegmentedMessage is a reply made of message segments, some of which are output text.
type SegmentedMessage struct {
	Segments  []Segment
	Separator string
}

// Segment is one content part of a segmented reply.
type Segment struct {
	Kind string
	Text string
}

// Segment kinds.
const (
	// SegmentOutputText marks segments carrying generated text.
	SegmentOutputText = "output_text"
	// SegmentRefusal marks segments in which the model declined to answer.
	SegmentRefusal = "refusal"
)

// Opaque is a reply of unknown shape, kept as its serialized form.
type Opaque struct {
	Raw string
}

func (m SegmentedMessage) join(kind string) string {
	parts := make([]string, 0, len(m.Segments))
	for _, seg := range m.Segments {
		if seg.Kind == kind {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, m.Separator)
}

func (DirectText) isResponse()       {}
func (SegmentedMessage) isResponse() {}
func (Opaque) isResponse()           {}

// ExtractText returns the text payload of a reply.
// A segmented reply yields its output text, or its refusal text when it has no output text.
// Opaque replies are returned whole so the caller always has something to parse.
func ExtractText(resp Response) string {
	switch r := resp.(type) {
	case DirectText:
		return r.Text
	case SegmentedMessage:
		if text := r.join(SegmentOutputText); text != "" {
			return text
		}
		return r.join(SegmentRefusal)
	case Opaque:
		return r.Raw
	default:
		return ""
	}
}

// ClassifyResponse maps a Responses API reply onto the Response variants.
// Priority: a top-level output_text field, then the text and refusal segments of
// message items, then the serialized reply.
func ClassifyResponse(resp *responses.Response) Response {
	if resp == nil {
		return Opaque{}
	}

	if field, ok := resp.JSON.ExtraFields["output_text"]; ok {
		var text string
		if err := json.Unmarshal([]byte(field.Raw()), &text); err == nil && text != "" {
			return DirectText{Text: text}
		}
	}

	var segments []Segment
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			switch c.Type {
			case SegmentOutputText:
				segments = append(segments, Segment{Kind: SegmentOutputText, Text: c.Text})
			case SegmentRefusal:
				segments = append(segments, Segment{Kind: SegmentRefusal, Text: c.Refusal})
			}
		}
	}
	if len(segments) > 0 {
		return SegmentedMessage{Segments: segments, Separator: "\n"}
	}

	return Opaque{Raw: resp.RawJSON()}
}
