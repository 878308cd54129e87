// Package lookup answers description-to-code queries over the
// classification's short-text index and substitutes curated rephrased
// descriptions into coding results.
//
// DescriptionLookup resolves a free-text description to its code by
// exact match against the lowered description index, optionally
// widened by a substring containment scan over the whole corpus.
// RephraseLookup maps codes to reviewed plain-language descriptions.
// Both treat absence as a normal outcome: a miss is reported in the
// result value, never as an error.
package lookup

import (
	"strings"

	"github.com/c360studio/sicindex/meta"
)

// classLabelDigits is the length of labels filed under the four-digit
// class convention; a leading zero restores the five-digit code.
const classLabelDigits = 4

// DescriptionRow is one row of the description-lookup source: a
// numeric label and the description filed under it.
type DescriptionRow struct {
	Label       string
	Description string
}

// DescriptionLookup maps free-text descriptions to classification
// codes. Descriptions are matched lower-cased; labels are normalized
// to five digits at construction. Read-only once built.
type DescriptionLookup struct {
	rows  []DescriptionRow
	index map[string]string
	meta  *meta.Store
}

// NewDescriptionLookup builds the lookup from source rows and the
// metadata store used to decorate results. Rows are normalized: the
// description is lower-cased and a four-digit label gains a leading
// zero. When two rows share a description the last one wins the exact
// index, matching the source convention.
func NewDescriptionLookup(rows []DescriptionRow, store *meta.Store) *DescriptionLookup {
	l := &DescriptionLookup{
		rows:  make([]DescriptionRow, 0, len(rows)),
		index: make(map[string]string, len(rows)),
		meta:  store,
	}

	for _, row := range rows {
		desc := strings.ToLower(row.Description)
		label := row.Label
		if len(label) == classLabelDigits {
			label = "0" + label
		}

		l.rows = append(l.rows, DescriptionRow{Label: label, Description: desc})
		l.index[desc] = label
	}

	return l
}

// Len returns the number of corpus rows behind the lookup.
func (l *DescriptionLookup) Len() int {
	return len(l.rows)
}

// Lookup resolves a description to its code. The exact match is
// decorated with the code's metadata and its division's metadata. With
// similarity enabled the result additionally carries the substring
// scan over the whole corpus.
func (l *DescriptionLookup) Lookup(description string, similarity bool) *Match {
	desc := strings.ToLower(description)
	m := &Match{Description: desc}

	if code, ok := l.index[desc]; ok {
		m.Code = code
		m.CodeDivision = divisionPrefix(code)
		if rec, found := l.meta.Get(code); found {
			m.CodeMeta = rec
		}
		if rec, found := l.meta.Get(m.CodeDivision); found {
			m.CodeDivisionMeta = rec
		}
	}

	if similarity {
		m.Potential = l.scanSimilar(desc, m.Code)
	}

	return m
}

// scanSimilar collects every corpus row containing the query as a
// substring. When the only distinct code found is the exact match
// itself, the scan reports nothing new.
func (l *DescriptionLookup) scanSimilar(desc, exactCode string) *PotentialMatches {
	codes := []string{}
	descriptions := []string{}
	seenCode := make(map[string]bool)
	seenDesc := make(map[string]bool)

	for _, row := range l.rows {
		if !strings.Contains(row.Description, desc) {
			continue
		}
		if !seenCode[row.Label] {
			seenCode[row.Label] = true
			codes = append(codes, row.Label)
		}
		if !seenDesc[row.Description] {
			seenDesc[row.Description] = true
			descriptions = append(descriptions, row.Description)
		}
	}

	if len(codes) == 1 && codes[0] == exactCode {
		return &PotentialMatches{Descriptions: []string{}, Codes: []string{}, Divisions: []Division{}}
	}

	divisions := []Division{}
	seenDiv := make(map[string]bool)
	for _, code := range codes {
		div := divisionPrefix(code)
		if seenDiv[div] {
			continue
		}
		seenDiv[div] = true

		d := Division{Code: div}
		if rec, found := l.meta.Get(div); found {
			d.Meta = rec
		}
		divisions = append(divisions, d)
	}

	return &PotentialMatches{
		DescriptionsCount: len(descriptions),
		Descriptions:      descriptions,
		CodesCount:        len(codes),
		Codes:             codes,
		DivisionsCount:    len(divisions),
		Divisions:         divisions,
	}
}

// LookupCodeDivision returns the division view of a full code: its
// two-digit prefix and that division's metadata. A code the store does
// not know yields an empty DivisionInfo.
func (l *DescriptionLookup) LookupCodeDivision(code string) DivisionInfo {
	if _, ok := l.meta.Get(code); !ok {
		return DivisionInfo{}
	}

	div := divisionPrefix(code)
	info := DivisionInfo{CodeDivision: div}
	if rec, ok := l.meta.Get(div); ok {
		info.CodeDivisionMeta = rec
	}
	return info
}

// UniqueCodeDivisions deduplicates candidates by division, preserving
// first-seen order. Candidates whose code has no metadata contribute
// no division.
func (l *DescriptionLookup) UniqueCodeDivisions(candidates []Candidate) []DivisionInfo {
	out := []DivisionInfo{}
	seen := make(map[string]bool)

	for _, candidate := range candidates {
		info := l.LookupCodeDivision(candidate.Code)
		if info.CodeDivision == "" || seen[info.CodeDivision] {
			continue
		}
		seen[info.CodeDivision] = true
		out = append(out, info)
	}

	return out
}

// divisionPrefix returns the two-digit division prefix of a code.
func divisionPrefix(code string) string {
	if len(code) < 2 {
		return code
	}
	return code[:2]
}
