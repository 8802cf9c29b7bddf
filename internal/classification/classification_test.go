package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.01.", "3.01"},
		{" 3.01 ", "3.01"},
		{"3.01", "3.01"},
		{"3.01..", "3.01"},
		{".3.01.", "3.01"},
		{"3. 01 .02", "3.01.02"},
		{"3..01", "3.01"},
		{"3", "3"},
		{"", ""},
		{"   ", ""},
		{"...", ""},
		{"abc", ""},
		{"3.A1", "3.A1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"3.01.", " 3.01 ", "3.01", "3.01..", " .3. 01. ", "", "x", "4.02.003."}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(""))
	assert.Equal(t, 1, Depth("3"))
	assert.Equal(t, 3, Depth("3.01.02"))
}

func TestParentAndAncestors(t *testing.T) {
	assert.Equal(t, "3.01", Parent("3.01.02"))
	assert.Equal(t, "3", Parent("3.01"))
	assert.Equal(t, "", Parent("3"))

	assert.Equal(t, []string{"3.01", "3"}, Ancestors("3.01.02"))
	assert.Empty(t, Ancestors("3"))
}
