package sic

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// TextRow pairs a code with one piece of leaf-level text, either the
// node's own description or one activity from the index.
type TextRow struct {
	Code Code
	Text string
}

// Hierarchy is the read-only classification catalog: every node in
// code order plus the multi-key lookup table built by Build.
type Hierarchy struct {
	nodes  []*Node
	lookup map[string]*Node
}

func newHierarchy(nodes []*Node, lookup map[string]*Node) *Hierarchy {
	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Code.Less(sorted[j].Code)
	})

	return &Hierarchy{nodes: sorted, lookup: lookup}
}

// Get resolves a node from any of its registered spellings: formatted
// ("01.11"), padded alpha ("A0111x"), unpadded alpha ("A0111"), bare
// digits ("0111"), or the five-digit zero form for a leaf class
// ("01110"). Absence is a normal outcome, not an error.
func (h *Hierarchy) Get(key string) (*Node, bool) {
	node, ok := h.lookup[key]
	return node, ok
}

// MustGet is Get for keys known to exist; it panics on a miss.
func (h *Hierarchy) MustGet(key string) *Node {
	node, ok := h.lookup[key]
	if !ok {
		panic(fmt.Sprintf("sic: no node for key %q", key))
	}
	return node
}

// Len returns the number of nodes in the catalog.
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

// Nodes returns all nodes in code order.
func (h *Hierarchy) Nodes() []*Node {
	out := make([]*Node, len(h.nodes))
	copy(out, h.nodes)
	return out
}

// LeafDescriptions returns one row per leaf node pairing its code with
// its description, in code order. Each call returns a fresh slice.
func (h *Hierarchy) LeafDescriptions() []TextRow {
	var rows []TextRow
	for _, node := range h.nodes {
		if node.IsLeaf() {
			rows = append(rows, TextRow{Code: node.Code, Text: node.Description})
		}
	}
	return rows
}

// LeafActivities returns one row per activity of every leaf node, in
// code order with activities in source order. Each call returns a
// fresh slice.
func (h *Hierarchy) LeafActivities() []TextRow {
	var rows []TextRow
	for _, node := range h.nodes {
		if !node.IsLeaf() {
			continue
		}
		for _, activity := range node.Activities {
			rows = append(rows, TextRow{Code: node.Code, Text: activity})
		}
	}
	return rows
}

// LeafText returns the union of leaf descriptions and leaf activities
// with duplicate (code, text) pairs removed, sorted by code with each
// node's description ahead of its activities. This is the short-text
// corpus consumed by downstream matching systems.
func (h *Hierarchy) LeafText() []TextRow {
	type pair struct {
		alpha string
		text  string
	}

	var rows []TextRow
	seen := make(map[pair]struct{})

	for _, row := range append(h.LeafDescriptions(), h.LeafActivities()...) {
		key := pair{alpha: row.Code.Alpha(), text: row.Text}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Code.Less(rows[j].Code)
	})

	return rows
}

// WriteLeafTextCSV writes the LeafText corpus to w as CSV with a
// "code,text" header, codes rendered in their formatted form.
func (h *Hierarchy) WriteLeafTextCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"code", "text"}); err != nil {
		return fmt.Errorf("write corpus header: %w", err)
	}

	for _, row := range h.LeafText() {
		if err := cw.Write([]string{row.Code.String(), row.Text}); err != nil {
			return fmt.Errorf("write corpus row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
