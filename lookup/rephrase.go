package lookup

// NotFound is the marker carried in Rephrase.Error when a code has no
// curated rewrite. Absence is an expected outcome, not a failure.
const NotFound = "SIC code not found"

// RephraseRow is one row of the rephrase source: a code string and the
// reviewed plain-language description for it.
type RephraseRow struct {
	Code     string
	Reviewed string
}

// Rephrase is the result of a rephrase lookup.
type Rephrase struct {
	Code     string `json:"sic_code"`
	Reviewed string `json:"reviewed_description,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Found reports whether a curated rewrite exists for the code.
func (r Rephrase) Found() bool {
	return r.Error == ""
}

// RephraseLookup maps codes to reviewed descriptions. Read-only once
// built.
type RephraseLookup struct {
	byCode map[string]string
}

// NewRephraseLookup builds the lookup from source rows, keyed by the
// code string as given.
func NewRephraseLookup(rows []RephraseRow) *RephraseLookup {
	l := &RephraseLookup{byCode: make(map[string]string, len(rows))}
	for _, row := range rows {
		l.byCode[row.Code] = row.Reviewed
	}
	return l
}

// Len returns the number of codes with a curated rewrite.
func (l *RephraseLookup) Len() int {
	return len(l.byCode)
}

// Lookup returns the reviewed description for a code, or the NotFound
// marker when the table has no entry.
func (l *RephraseLookup) Lookup(code string) Rephrase {
	if reviewed, ok := l.byCode[code]; ok {
		return Rephrase{Code: code, Reviewed: reviewed}
	}
	return Rephrase{Code: code, Error: NotFound}
}

// Apply substitutes reviewed descriptions into a coding result in
// place. The primary description is replaced, and cleared when the
// primary code is empty or has no entry. A candidate's text is
// replaced only when an entry exists; candidates without one keep
// their original text.
func (l *RephraseLookup) Apply(result *CodedResult) {
	if result == nil {
		return
	}

	if result.Code == "" {
		result.Description = nil
	} else if r := l.Lookup(result.Code); r.Found() {
		reviewed := r.Reviewed
		result.Description = &reviewed
	} else {
		result.Description = nil
	}

	for i := range result.Candidates {
		if r := l.Lookup(result.Candidates[i].Code); r.Found() {
			result.Candidates[i].Descriptive = r.Reviewed
		}
	}
}
