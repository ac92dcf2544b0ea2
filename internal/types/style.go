package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ToneTag is one entry of the fixed tone vocabulary offered to recruiters.
type ToneTag string

// Tone vocabulary. Values are the literal words folded into the instruction prompt.
const (
	ToneClear          ToneTag = "chiaro"
	ToneConcrete       ToneTag = "concreto"
	ToneInclusive      ToneTag = "inclusivo"
	ToneAuthoritative  ToneTag = "autorevole"
	ToneWelcoming      ToneTag = "accogliente"
	ToneActionOriented ToneTag = "orientato all'azione"
	ToneFormal         ToneTag = "formale"
	ToneColloquial     ToneTag = "colloquiale"
)

// ToneTags returns the whole vocabulary in display order.
func ToneTags() []ToneTag {
	return []ToneTag{
		ToneClear,
		ToneConcrete,
		ToneInclusive,
		ToneAuthoritative,
		ToneWelcoming,
		ToneActionOriented,
		ToneFormal,
		ToneColloquial,
	}
}

// IsKnownTone reports whether tag belongs to the vocabulary.
func IsKnownTone(tag ToneTag) bool {
	for _, t := range ToneTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// StyleOptions are the optional style preferences of a submission.
type StyleOptions struct {
	Tones   []ToneTag `json:"tones" validate:"dive,tone"`
	Bullets bool      `json:"bullets"`
}

// DefaultStyleOptions mirrors the form's preselected values.
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		Tones:   []ToneTag{ToneClear, ToneInclusive, ToneConcrete},
		Bullets: true,
	}
}

var styleValidate = newStyleValidator()

func newStyleValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("tone", func(fl validator.FieldLevel) bool {
		return IsKnownTone(ToneTag(fl.Field().String()))
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks that every tone tag is part of the vocabulary.
func (s StyleOptions) Validate() error {
	return styleValidate.Struct(s)
}

// ParseToneTags converts raw strings (e.g. form values or CLI flags) into tone tags.
// Blank entries are skipped; unknown entries are an error.
func ParseToneTags(values []string) ([]ToneTag, error) {
	tags := make([]ToneTag, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		tag := ToneTag(v)
		if !IsKnownTone(tag) {
			return nil, fmt.Errorf("unknown tone tag %q", v)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
