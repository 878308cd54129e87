package sic

import (
	"html"
	"regexp"
)

// crossRefRE matches editorial cross-reference annotations in metadata
// text, e.g. ", see ##01.13" or "see divisions ##46 and ##47", where the
// published source marks referenced codes with a leading "##". The
// surrounding "see ..." phrase is removed together with the marker.
var crossRefRE = regexp.MustCompile(`(?i)(,?\s?see\s(divisions?\s)?)?##\d+(\.\d+(/\d)?)?`)

// CleanText normalizes free text from the metadata source: HTML
// entities are unescaped and cross-reference annotations are removed.
// Pure string transformation; safe on already-clean text.
func CleanText(text string) string {
	return crossRefRE.ReplaceAllString(html.UnescapeString(text), "")
}
