package sic

import (
	"fmt"
	"strings"

	"github.com/c360studio/sicindex/meta"
)

// StructureRow is one row of the published classification structure:
// a description, the section letter, the most disaggregated numeric
// code at which the entry sits, and the level heading naming that
// depth.
type StructureRow struct {
	Description string
	Section     string
	Code        string
	Level       string
}

// ActivityRow is one row of the classification index: a five-digit
// numeric code and one activity description classified under it.
type ActivityRow struct {
	Code     string
	Activity string
}

// Build constructs the catalog from flat structure rows, a metadata
// store and an activity index. The pipeline fails fast: on any error no
// hierarchy is returned and the error identifies the offending stage.
//
// Stages: define a Code and Node per row, link every node to its parent
// by code truncation, attach cleaned metadata (the store must carry
// exactly one record per node), attach activity text by five-digit
// code, then build the multi-key lookup table.
func Build(rows []StructureRow, store *meta.Store, index []ActivityRow) (*Hierarchy, error) {
	nodes, byCode, err := defineNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("define codes: %w", err)
	}

	if err := linkParents(nodes, byCode); err != nil {
		return nil, fmt.Errorf("link parents: %w", err)
	}

	if err := attachMeta(nodes, byCode, store); err != nil {
		return nil, fmt.Errorf("attach metadata: %w", err)
	}

	if err := attachActivities(nodes, index); err != nil {
		return nil, fmt.Errorf("attach activities: %w", err)
	}

	return newHierarchy(nodes, buildLookup(nodes)), nil
}

// defineNodes materializes one node per structure row and indexes them
// by code. Malformed rows surface as FormatError.
func defineNodes(rows []StructureRow) ([]*Node, map[Code]*Node, error) {
	nodes := make([]*Node, 0, len(rows))
	byCode := make(map[Code]*Node, len(rows))

	for _, row := range rows {
		code, err := CodeFromParts(row.Section, row.Code, row.Level)
		if err != nil {
			return nil, nil, err
		}

		node := &Node{Code: code, Description: row.Description}
		nodes = append(nodes, node)
		byCode[code] = node
	}

	return nodes, byCode, nil
}

// linkParents wires each non-section node to its parent. The parent's
// alpha code is the child's truncated to the previous level: the
// section letter for a division, the first three symbols for a group,
// and so on.
func linkParents(nodes []*Node, byCode map[Code]*Node) error {
	for _, node := range nodes {
		if node.Code.NDigits() <= 1 {
			continue
		}

		alpha := node.Code.Alpha()
		var prefix string
		switch node.Code.NDigits() {
		case 2:
			prefix = alpha[:1]
		case 3:
			prefix = alpha[:3]
		case 4:
			prefix = alpha[:4]
		case 5:
			prefix = alpha[:5]
		}

		parentCode, err := ParseCode(pad(prefix))
		if err != nil {
			return err
		}

		parent, ok := byCode[parentCode]
		if !ok {
			return &LookupError{Stage: "link parents", Key: parentCode.Alpha()}
		}

		parent.Children = append(parent.Children, node)
		node.Parent = parent
	}

	return nil
}

// attachMeta verifies the store covers the node set exactly, then
// attaches a cleaned copy of each record to its node. The count check
// runs before any node is touched so a mismatch never leaves a
// half-annotated tree.
func attachMeta(nodes []*Node, byCode map[Code]*Node, store *meta.Store) error {
	if store.Count() != len(nodes) {
		return &ConsistencyError{Records: store.Count(), Nodes: len(nodes)}
	}

	for _, rec := range store.Records() {
		code, err := ParseCode(rec.Code)
		if err != nil {
			return err
		}

		node, ok := byCode[code]
		if !ok {
			return &LookupError{Stage: "attach metadata", Key: rec.Code}
		}

		node.Meta = cleanRecord(rec)
	}

	return nil
}

// attachActivities appends activity text to class and subclass nodes.
// The index source spells every code as five digits, so four-digit
// class codes are registered with a trailing zero.
func attachActivities(nodes []*Node, index []ActivityRow) error {
	byDigits := make(map[string]*Node)

	for _, node := range nodes {
		switch node.Code.NDigits() {
		case 4:
			byDigits[node.Code.Digits()+"0"] = node
		case 5:
			byDigits[node.Code.Digits()] = node
		}
	}

	for _, row := range index {
		key := strings.TrimSpace(row.Code)
		node, ok := byDigits[key]
		if !ok {
			return &LookupError{Stage: "attach activities", Key: key}
		}
		node.Activities = append(node.Activities, row.Activity)
	}

	return nil
}

// buildLookup registers every spelling of every node: the formatted
// string, the padded and unpadded alpha forms, the bare digits for
// multi-digit codes, and the five-digit zero form for leaf classes.
func buildLookup(nodes []*Node) map[string]*Node {
	lookup := make(map[string]*Node, len(nodes)*4)

	for _, node := range nodes {
		lookup[node.Code.String()] = node
		lookup[node.Code.Alpha()] = node
		lookup[node.Code.Unpadded()] = node

		if node.Code.NDigits() > 1 {
			lookup[node.Code.Digits()] = node
		}

		if node.Code.NDigits() == 4 && node.IsLeaf() {
			lookup[node.Code.Digits()+"0"] = node
		}
	}

	return lookup
}

// cleanRecord copies a metadata record with its free-text fields run
// through CleanText. Code and title carry over unchanged.
func cleanRecord(rec meta.Record) *meta.Record {
	out := &meta.Record{
		Code:   rec.Code,
		Title:  rec.Title,
		Detail: CleanText(rec.Detail),
	}

	if len(rec.Includes) > 0 {
		out.Includes = make([]string, len(rec.Includes))
		for i, text := range rec.Includes {
			out.Includes[i] = CleanText(text)
		}
	}

	if len(rec.Excludes) > 0 {
		out.Excludes = make([]string, len(rec.Excludes))
		for i, text := range rec.Excludes {
			out.Excludes[i] = CleanText(text)
		}
	}

	return out
}
