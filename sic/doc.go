// Package sic models the UK Standard Industrial Classification 2007 as an
// in-memory catalog.
//
// The classification is a five-level taxonomy: section, division, group,
// class and subclass. Codes are represented internally in a fixed-width
// "alpha" form: the section letter, followed by the numeric code, padded
// with 'x' to six characters. Class 01.11 in section A is "A0111x"; its
// subclass 01.11/0 would be "A01110".
//
// Build reconstructs the full tree from flat structure rows plus a
// metadata store and an activity index:
//
//	h, err := sic.Build(rows, store, index)
//	if err != nil {
//	    return err
//	}
//	node, ok := h.Get("01.11")
//
// The resulting Hierarchy resolves a node from any of its spellings
// (formatted "01.11", alpha "A0111x", unpadded "A0111", digits "0111",
// and "01110" for a leaf class) and exposes leaf-level text aggregation
// for downstream matching corpora.
//
// A Hierarchy is built once and read-only afterwards; all query methods
// are safe for concurrent readers once Build has returned.
package sic
