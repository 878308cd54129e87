// Package meta provides the per-code metadata dictionary consumed by
// the catalog builder and the lookup components: one Record per code
// with its title, descriptive detail and include/exclude lists.
package meta

import (
	"slices"
	"strings"
)

// minDigits is the smallest numeric prefix considered a meaningful
// match; 1-digit prefixes are ambiguous across sections.
const minDigits = 2

// defaultPromptDigits selects division and class records for prompt
// rendering when no explicit subset is given.
var defaultPromptDigits = []int{4, 2}

// Record is the metadata for one classification code.
type Record struct {
	// Code is the category code in alpha form. Either a full code or a
	// partial code for a larger hierarchical group; a partial code has
	// its last digits replaced by 'x', e.g. "A0111x".
	Code string `yaml:"code" json:"code"`

	// Title is the short descriptive title of the category.
	Title string `yaml:"title" json:"title"`

	// Detail is the longer descriptive label for the category.
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`

	// Includes lists titles that belong to this category.
	Includes []string `yaml:"includes,omitempty" json:"includes,omitempty"`

	// Excludes lists titles that belong elsewhere.
	Excludes []string `yaml:"excludes,omitempty" json:"excludes,omitempty"`
}

// digits returns the numeric part of the record's code, with the
// section letter and filler stripped.
func (r Record) digits() string {
	stripped := strings.ReplaceAll(r.Code, "x", "")
	if len(stripped) <= 1 {
		return ""
	}
	return stripped[1:]
}

// MatchesPrefix reports whether subcode is a numeric prefix of this
// record's code. The comparison discards the section letter and only
// considers prefixes of at least two digits.
func (r Record) MatchesPrefix(subcode string) bool {
	n := len(strings.ReplaceAll(r.Code, "x", ""))
	if m := len(subcode) + 1; m < n {
		n = m
	}
	if n <= minDigits {
		return false
	}
	return r.Code[1:n] == subcode[:n-1]
}

// PromptText renders the record as a single line suitable for inclusion
// in a text prompt: "Code NN: title. detail. Includes a, b. Excludes c."
// Only records whose digit length is in subsetDigits are rendered; the
// default subset selects classes and divisions. Other records yield "".
func (r Record) PromptText(subsetDigits []int) string {
	if subsetDigits == nil {
		subsetDigits = defaultPromptDigits
	}

	digits := r.digits()
	if !slices.Contains(subsetDigits, len(digits)) {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Code " + digits + ": " + r.Title + ". ")
	if r.Detail != "" {
		sb.WriteString(r.Detail + ". ")
	}
	if len(r.Includes) > 0 {
		sb.WriteString("Includes " + strings.Join(r.Includes, ", ") + ". ")
	}
	if len(r.Excludes) > 0 {
		sb.WriteString("Excludes " + strings.Join(r.Excludes, ", ") + ". ")
	}
	return sb.String()
}
