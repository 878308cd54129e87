// Package source loads the published classification data files: the
// condensed structure list, the activity index, the description corpus,
// the rephrased descriptions, and the YAML metadata shards. It also
// provides a file watcher for reloading the catalog when data changes.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c360studio/sicindex/lookup"
	"github.com/c360studio/sicindex/sic"
)

// Column names expected in the published CSV files.
const (
	colDescription = "description"
	colSection     = "section"
	colCode        = "most_disaggregated_level"
	colLevel       = "level_headings"

	colActivityCode = "uk_sic_2007"
	colActivity     = "activity"

	colLabel = "label"

	colSicCode  = "sic_code"
	colReviewed = "reviewed_description"
)

// ReadStructure reads the condensed structure list from r.
func ReadStructure(r io.Reader) ([]sic.StructureRow, error) {
	records, index, err := readTable(r, colDescription, colSection, colCode, colLevel)
	if err != nil {
		return nil, err
	}

	rows := make([]sic.StructureRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, sic.StructureRow{
			Description: rec[index[colDescription]],
			Section:     rec[index[colSection]],
			Code:        rec[index[colCode]],
			Level:       rec[index[colLevel]],
		})
	}
	return rows, nil
}

// LoadStructure reads the condensed structure list from a file.
func LoadStructure(path string) ([]sic.StructureRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load structure: %w", err)
	}
	defer f.Close()

	rows, err := ReadStructure(f)
	if err != nil {
		return nil, fmt.Errorf("load structure %s: %w", path, err)
	}
	return rows, nil
}

// ReadActivityIndex reads the alphabetical activity index from r.
func ReadActivityIndex(r io.Reader) ([]sic.ActivityRow, error) {
	records, index, err := readTable(r, colActivityCode, colActivity)
	if err != nil {
		return nil, err
	}

	rows := make([]sic.ActivityRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, sic.ActivityRow{
			Code:     rec[index[colActivityCode]],
			Activity: rec[index[colActivity]],
		})
	}
	return rows, nil
}

// LoadActivityIndex reads the alphabetical activity index from a file.
func LoadActivityIndex(path string) ([]sic.ActivityRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load activity index: %w", err)
	}
	defer f.Close()

	rows, err := ReadActivityIndex(f)
	if err != nil {
		return nil, fmt.Errorf("load activity index %s: %w", path, err)
	}
	return rows, nil
}

// ReadDescriptions reads the labelled description corpus from r.
func ReadDescriptions(r io.Reader) ([]lookup.DescriptionRow, error) {
	records, index, err := readTable(r, colLabel, colDescription)
	if err != nil {
		return nil, err
	}

	rows := make([]lookup.DescriptionRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, lookup.DescriptionRow{
			Label:       rec[index[colLabel]],
			Description: rec[index[colDescription]],
		})
	}
	return rows, nil
}

// LoadDescriptions reads the labelled description corpus from a file.
func LoadDescriptions(path string) ([]lookup.DescriptionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load descriptions: %w", err)
	}
	defer f.Close()

	rows, err := ReadDescriptions(f)
	if err != nil {
		return nil, fmt.Errorf("load descriptions %s: %w", path, err)
	}
	return rows, nil
}

// ReadRephrased reads the reviewed description table from r.
func ReadRephrased(r io.Reader) ([]lookup.RephraseRow, error) {
	records, index, err := readTable(r, colSicCode, colReviewed)
	if err != nil {
		return nil, err
	}

	rows := make([]lookup.RephraseRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, lookup.RephraseRow{
			Code:     rec[index[colSicCode]],
			Reviewed: rec[index[colReviewed]],
		})
	}
	return rows, nil
}

// LoadRephrased reads the reviewed description table from a file.
func LoadRephrased(path string) ([]lookup.RephraseRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load rephrased: %w", err)
	}
	defer f.Close()

	rows, err := ReadRephrased(f)
	if err != nil {
		return nil, fmt.Errorf("load rephrased %s: %w", path, err)
	}
	return rows, nil
}

// readTable reads a CSV with a header row and returns the data records
// along with a column name to index mapping. Header names are matched
// case-insensitively and ignoring surrounding whitespace.
func readTable(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	index := headerIndex(header)
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", col)
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return records, index, nil
}

// headerIndex maps normalized column names to their positions. The
// first occurrence of a duplicated name wins.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return index
}
