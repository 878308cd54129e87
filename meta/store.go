package meta

import "strings"

// Store is a read-only metadata dictionary. Records are kept in source
// order and indexed under every spelling a caller may hold: the alpha
// code as given, the alpha code with filler stripped, the bare digits,
// and for four-digit class codes the five-digit form with a trailing
// zero, matching the convention used by activity and description
// sources.
type Store struct {
	records []Record
	byKey   map[string]*Record
}

// NewStore indexes the given records. Exact spellings are registered
// first; the retrofitted five-digit class keys never shadow a record
// that owns that code outright.
func NewStore(records []Record) *Store {
	s := &Store{
		records: records,
		byKey:   make(map[string]*Record, len(records)*3),
	}

	for i := range s.records {
		rec := &s.records[i]
		s.register(rec.Code, rec)
		stripped := strings.ReplaceAll(rec.Code, "x", "")
		s.register(stripped, rec)
		if len(stripped) > 1 {
			s.register(stripped[1:], rec)
		}
	}

	for i := range s.records {
		rec := &s.records[i]
		if digits := rec.digits(); len(digits) == 4 {
			s.register(digits+"0", rec)
		}
	}

	return s
}

func (s *Store) register(key string, rec *Record) {
	if key == "" {
		return
	}
	if _, exists := s.byKey[key]; !exists {
		s.byKey[key] = rec
	}
}

// Get returns the record for a code in any registered spelling.
func (s *Store) Get(code string) (*Record, bool) {
	rec, ok := s.byKey[code]
	return rec, ok
}

// Count returns the number of records.
func (s *Store) Count() int {
	return len(s.records)
}

// Records returns the records in source order. The slice is a copy;
// the records are shared and must not be mutated.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
