package sic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeString(t *testing.T) {
	h := buildTestHierarchy(t)

	assert.Equal(t, `01.1: "Growing of non-perennial crops"`, h.MustGet("011").String())
	assert.Equal(t, `A: "Agriculture, Forestry and Fishing"`, h.MustGet("A").String())
}

func TestNodeNumericStringPadded(t *testing.T) {
	h := buildTestHierarchy(t)

	tests := []struct {
		key  string
		want string
	}{
		{key: "A", want: ""},
		{key: "01", want: "01"},
		{key: "01.1", want: "011"},
		{key: "01.11", want: "01110"},
		{key: "01.13", want: "0113"},
		{key: "01.13/1", want: "01131"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, h.MustGet(tt.key).NumericStringPadded())
		})
	}
}

func TestNodeDetails(t *testing.T) {
	h := buildTestHierarchy(t)

	details := h.MustGet("01.11").Details()

	assert.Contains(t, details, `01.11: "Growing of cereals (except rice), leguminous crops and oil seeds"`)
	assert.Contains(t, details, "Level: class")
	assert.Contains(t, details, "Section: A")
	assert.Contains(t, details, `Parent: 01.1: "Growing of non-perennial crops"`)
	assert.Contains(t, details, "growing of wheat")
	assert.Contains(t, details, "Excludes:")

	section := h.MustGet("A").Details()
	assert.Contains(t, section, "Parent: none")
	require.Contains(t, section, "Children:")
	assert.Contains(t, section, `- 01: "Crop and animal production, hunting and related service activities"`)
}
