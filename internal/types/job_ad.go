// Package types provides type definitions for structured data used throughout the job ad assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// Draft is the recruiter-supplied input for one submission.
// Either Raw or the split fields (or both) may be filled; every field is optional.
type Draft struct {
	Raw              string `json:"raw,omitempty"`
	Title            string `json:"title,omitempty"`
	Description      string `json:"description,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty"`
	Qualifications   string `json:"qualifications,omitempty"`
	Education        string `json:"education,omitempty"`
	Benefits         string `json:"benefits,omitempty"`
	Location         string `json:"location,omitempty"`
	Contract         string `json:"contract,omitempty"`
}

// Trimmed returns a copy of the draft with surrounding whitespace removed from every field.
func (d Draft) Trimmed() Draft {
	return Draft{
		Raw:              strings.TrimSpace(d.Raw),
		Title:            strings.TrimSpace(d.Title),
		Description:      strings.TrimSpace(d.Description),
		Responsibilities: strings.TrimSpace(d.Responsibilities),
		Qualifications:   strings.TrimSpace(d.Qualifications),
		Education:        strings.TrimSpace(d.Education),
		Benefits:         strings.TrimSpace(d.Benefits),
		Location:         strings.TrimSpace(d.Location),
		Contract:         strings.TrimSpace(d.Contract),
	}
}

// HasContent reports whether the draft carries anything worth sending to the model.
// Location and Contract are metadata and do not count on their own.
func (d Draft) HasContent() bool {
	for _, v := range []string{d.Raw, d.Title, d.Description, d.Responsibilities, d.Qualifications, d.Education, d.Benefits} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Merge fills the empty fields of d with the values of other.
// Raw texts are concatenated, d first.
func (d Draft) Merge(other Draft) Draft {
	pick := func(a, b string) string {
		if strings.TrimSpace(a) != "" {
			return a
		}
		return b
	}
	merged := Draft{
		Title:            pick(d.Title, other.Title),
		Description:      pick(d.Description, other.Description),
		Responsibilities: pick(d.Responsibilities, other.Responsibilities),
		Qualifications:   pick(d.Qualifications, other.Qualifications),
		Education:        pick(d.Education, other.Education),
		Benefits:         pick(d.Benefits, other.Benefits),
		Location:         pick(d.Location, other.Location),
		Contract:         pick(d.Contract, other.Contract),
	}
	switch {
	case strings.TrimSpace(d.Raw) == "":
		merged.Raw = other.Raw
	case strings.TrimSpace(other.Raw) == "":
		merged.Raw = d.Raw
	default:
		merged.Raw = d.Raw + "\n\n" + other.Raw
	}
	return merged
}

// Details holds the placement metadata of a full-shape ad.
type Details struct {
	Location string `json:"sede"`
	Contract string `json:"contratto"`
}

// GeneratedAd is the structured job ad recovered from a model reply.
// Lists are never nil and scalars default to the empty string, so renderers
// can read any field without checking for presence.
type GeneratedAd struct {
	Shape AdShape `json:"-"`

	Title              string
	Abstract           string
	GeneralDescription string
	Responsibilities   []string
	Qualifications     []string
	EducationLevels    []string
	Benefits           []string
	Details            Details
	FullText           string
}

// NewGeneratedAd returns an empty ad of the given shape with all lists initialized.
func NewGeneratedAd(shape AdShape) *GeneratedAd {
	if shape == "" {
		shape = ShapeFull
	}
	return &GeneratedAd{
		Shape:            shape,
		Responsibilities: []string{},
		Qualifications:   []string{},
		EducationLevels:  []string{},
		Benefits:         []string{},
	}
}

// Backfill fills dettagli.sede and dettagli.contratto from user-supplied values.
// Only empty model values are replaced. Minimal-shape ads carry no details and are left alone.
func (a *GeneratedAd) Backfill(location, contract string) {
	if a == nil || a.Shape != ShapeFull {
		return
	}
	if location = strings.TrimSpace(location); location != "" && strings.TrimSpace(a.Details.Location) == "" {
		a.Details.Location = location
	}
	if contract = strings.TrimSpace(contract); contract != "" && strings.TrimSpace(a.Details.Contract) == "" {
		a.Details.Contract = contract
	}
}

// Record returns the ad keyed by its shape's wire field names.
func (a *GeneratedAd) Record() map[string]any {
	if a.Shape == ShapeMinimal {
		return map[string]any{
			KeyGeneralDescription: a.GeneralDescription,
			KeyResponsibilities:   nonNil(a.Responsibilities),
			KeyQualifications:     nonNil(a.Qualifications),
			KeyEducationLevel:     nonNil(a.EducationLevels),
		}
	}
	return map[string]any{
		KeyTitle:            a.Title,
		KeyAbstract:         a.Abstract,
		KeyResponsibilities: nonNil(a.Responsibilities),
		KeyQualifications:   nonNil(a.Qualifications),
		KeyEducationLevels:  nonNil(a.EducationLevels),
		KeyBenefits:         nonNil(a.Benefits),
		KeyDetails: map[string]string{
			KeyLocation: a.Details.Location,
			KeyContract: a.Details.Contract,
		},
		KeyFullText: a.FullText,
	}
}

// MarshalJSON encodes the ad using its shape's field names.
func (a *GeneratedAd) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Record())
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
