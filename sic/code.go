package sic

import (
	"fmt"
	"strings"
)

// Hierarchy level names, by increasing depth.
const (
	LevelSection  = "section"
	LevelDivision = "division"
	LevelGroup    = "group"
	LevelClass    = "class"
	LevelSubclass = "subclass"
)

const (
	// AlphaWidth is the fixed width of a padded alpha code.
	AlphaWidth = 6

	// Filler pads an alpha code on the right to AlphaWidth.
	Filler = "x"
)

// levelNames maps digit count to the level name at that depth. The
// section letter counts as one digit.
var levelNames = map[int]string{
	1: LevelSection,
	2: LevelDivision,
	3: LevelGroup,
	4: LevelClass,
	5: LevelSubclass,
}

// Code is one classification code in canonical alpha form: the section
// letter followed by the numeric code, right-padded with Filler to six
// characters. "A0111x" is class 01.11 in section A.
//
// Code values are immutable and comparable; two codes are equal iff
// their alpha forms are equal, so Code can be used directly as a map
// key. Ordering (Less) is lexicographic over the unpadded form, which
// places a section before its divisions and a class before its
// subclasses.
//
// Beyond format and level consistency checks, Code does not verify that
// a code is actually defined in UK SIC 2007.
type Code struct {
	alpha   string
	nDigits int
}

// ParseCode validates an alpha code string and returns its Code value.
// It fails with a FormatError when the first character is not an upper
// case letter, when the string is not padded to exactly six characters,
// or when a single numeric digit follows the letter (no level has a
// one-digit numeric code).
func ParseCode(alpha string) (Code, error) {
	if len(alpha) != AlphaWidth {
		return Code{}, &FormatError{Value: alpha, Reason: "alpha code must be padded to 6 characters"}
	}
	if first := alpha[0]; first < 'A' || first > 'Z' {
		return Code{}, &FormatError{Value: alpha, Reason: "alpha code must start with an upper case letter A-Z"}
	}

	stripped := strings.ReplaceAll(alpha, Filler, "")
	nDigits := len(stripped) - 1
	if nDigits == 0 {
		nDigits = 1
	} else if nDigits == 1 {
		return Code{}, &FormatError{Value: alpha, Reason: "single digit after the section letter"}
	}

	return Code{alpha: alpha, nDigits: nDigits}, nil
}

// MustParseCode is ParseCode for known-good literals. It panics on error.
func MustParseCode(alpha string) Code {
	c, err := ParseCode(alpha)
	if err != nil {
		panic(err)
	}
	return c
}

// CodeFromParts builds a Code from a section letter, a numeric code and
// a level name, as supplied by the published structure table. The level
// name is lower-cased and stripped of spaces before matching.
//
// A numeric code shorter than five digits must sit at exactly the level
// its length implies. A five-digit code is accepted at class or subclass
// level; at class level its last digit must be zero and is dropped,
// collapsing the conventional five-digit spelling of a class back to the
// four-digit form.
func CodeFromParts(section, numeric, level string) (Code, error) {
	level = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(level)), " ", "")

	switch {
	case len(numeric) < 5:
		if levelNames[len(numeric)] != level {
			return Code{}, &FormatError{Value: numeric, Reason: fmt.Sprintf("code/level mismatch with %q", level)}
		}
	case len(numeric) == 5:
		if level != LevelClass && level != LevelSubclass {
			return Code{}, &FormatError{Value: numeric, Reason: fmt.Sprintf("code/level mismatch with %q", level)}
		}
	}

	if level == LevelSection && section != numeric {
		return Code{}, &FormatError{Value: numeric, Reason: fmt.Sprintf("section/code mismatch with %q", section)}
	}

	var alpha string
	switch level {
	case LevelSection:
		alpha = section
	case LevelClass:
		if len(numeric) == 5 {
			if numeric[4] != '0' {
				return Code{}, &FormatError{Value: numeric, Reason: "class code given as 5 digits must end in zero"}
			}
			numeric = numeric[:4]
		}
		alpha = section + numeric
	default:
		alpha = section + numeric
	}

	return ParseCode(pad(alpha))
}

// pad right-pads an alpha prefix with Filler to AlphaWidth. Prefixes
// already at or beyond the width are returned unchanged so that
// ParseCode reports the defect.
func pad(alpha string) string {
	if len(alpha) >= AlphaWidth {
		return alpha
	}
	return alpha + strings.Repeat(Filler, AlphaWidth-len(alpha))
}

// Alpha returns the padded canonical form, e.g. "A0111x".
func (c Code) Alpha() string {
	return c.alpha
}

// Unpadded returns the canonical form with the filler stripped, e.g.
// "A0111". Equality and ordering are defined over this form.
func (c Code) Unpadded() string {
	return strings.ReplaceAll(c.alpha, Filler, "")
}

// Digits returns the numeric part of the code without the section
// letter, e.g. "0111". Empty for a section code.
func (c Code) Digits() string {
	u := c.Unpadded()
	if len(u) <= 1 {
		return ""
	}
	return u[1:]
}

// NDigits returns the digit count that determines the level: 1 for a
// section (the letter counts as one digit), 2-5 below it.
func (c Code) NDigits() int {
	return c.nDigits
}

// LevelName returns section, division, group, class or subclass.
func (c Code) LevelName() string {
	return levelNames[c.nDigits]
}

// Section returns the section letter.
func (c Code) Section() string {
	if c.alpha == "" {
		return ""
	}
	return c.alpha[:1]
}

// String returns the human-readable form: "A" for a section, "01" for a
// division, "01.1" for a group, "01.11" for a class and "01.11/0" for a
// subclass.
func (c Code) String() string {
	u := c.Unpadded()
	switch len(u) {
	case 1:
		return u
	case 3:
		return u[1:3]
	case 4, 5:
		return u[1:3] + "." + u[3:]
	case 6:
		return u[1:3] + "." + u[3:5] + "/" + u[5:]
	}
	return ""
}

// Less orders codes lexicographically over the unpadded form. A section
// sorts before every code inside it, and shared prefixes sort by the
// next digit.
func (c Code) Less(other Code) bool {
	return c.Unpadded() < other.Unpadded()
}
