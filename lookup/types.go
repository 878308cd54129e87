package lookup

import "github.com/c360studio/sicindex/meta"

// Match is the result of a description lookup. Code is empty when the
// description is not in the index; the metadata fields are nil when
// the store carries no entry for the code or its division.
type Match struct {
	Description      string            `json:"description"`
	Code             string            `json:"code,omitempty"`
	CodeMeta         *meta.Record      `json:"code_meta,omitempty"`
	CodeDivision     string            `json:"code_division,omitempty"`
	CodeDivisionMeta *meta.Record      `json:"code_division_meta,omitempty"`
	Potential        *PotentialMatches `json:"potential_matches,omitempty"`
}

// Found reports whether the exact lookup matched a code.
func (m *Match) Found() bool {
	return m.Code != ""
}

// PotentialMatches aggregates the similarity scan: distinct matched
// descriptions and codes in corpus order, and their divisions in
// first-seen order.
type PotentialMatches struct {
	DescriptionsCount int        `json:"descriptions_count"`
	Descriptions      []string   `json:"descriptions"`
	CodesCount        int        `json:"codes_count"`
	Codes             []string   `json:"codes"`
	DivisionsCount    int        `json:"divisions_count"`
	Divisions         []Division `json:"divisions"`
}

// Division pairs a two-digit division code with its metadata.
type Division struct {
	Code string       `json:"code"`
	Meta *meta.Record `json:"meta,omitempty"`
}

// DivisionInfo is the division view of one full code.
type DivisionInfo struct {
	CodeDivision     string       `json:"code_division,omitempty"`
	CodeDivisionMeta *meta.Record `json:"code_division_meta,omitempty"`
}

// Candidate is one alternative code proposed for a description.
type Candidate struct {
	Code        string `json:"sic_code"`
	Descriptive string `json:"sic_descriptive,omitempty"`
}

// CodedResult is a coding outcome: the chosen primary code and its
// description plus the ranked candidates it was selected from.
type CodedResult struct {
	Code        string      `json:"sic_code,omitempty"`
	Description *string     `json:"sic_description"`
	Candidates  []Candidate `json:"sic_candidates,omitempty"`
}
