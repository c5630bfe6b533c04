package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Local format with leading zero", "09171234567", "639171234567"},
		{"International with plus", "+639171234567", "639171234567"},
		{"Already prefixed", "639171234567", "639171234567"},
		{"Spaces and dashes", "0917 123-4567", "639171234567"},
		{"Parenthesized", "(0917) 123 4567", "639171234567"},
		{"Only zeros", "0000", ""},
		{"No digits at all", "abc-def", ""},
		{"Empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.raw, "63"))
		})
	}
}

func TestNormalizePhoneDeterminism(t *testing.T) {
	// All spellings of the same number must collapse to one value.
	a := NormalizePhone("0917 123 4567", "63")
	b := NormalizePhone("+639171234567", "63")
	c := NormalizePhone("639171234567", "63")

	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
	assert.Equal(t, "639171234567", a)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "juan@example.com", NormalizeEmail("  Juan@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
	// Malformed addresses still pass through.
	assert.Equal(t, "not-an-email", NormalizeEmail("Not-An-Email"))
}

func TestNormalizeFacebook(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Profile id query param", "https://facebook.com/profile.php?id=100012345", "100012345"},
		{"Path username", "https://www.facebook.com/juan.delacruz", "juan.delacruz"},
		{"Short domain", "https://fb.com/juandc", "juandc"},
		{"Shortlink domain", "https://fb.me/juandc", "juandc"},
		{"Username with trailing slash", "https://facebook.com/juan.delacruz/", "juan.delacruz"},
		{"Uppercase handle lowered", "https://facebook.com/JuanDC", "juandc"},
		{"No match falls back to trimmed raw", "  just a handle  ", "just a handle"},
		{"Empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFacebook(tt.raw))
		})
	}
}

func TestNormalizeOrderAndDrops(t *testing.T) {
	input := SearchInput{
		Name:          " Juan Dela Cruz ",
		Phones:        []string{"09171234567", "000", "0917 123 4567"},
		Emails:        []string{"Juan@Example.com"},
		FacebookLinks: []string{"https://facebook.com/juan.delacruz"},
	}

	got := Normalize(input, "63")

	// "000" yields no candidate; duplicates are kept at this stage.
	assert.Len(t, got, 5)
	assert.Equal(t, Candidate{Type: TypeName, Value: "Juan Dela Cruz", Raw: " Juan Dela Cruz "}, got[0])
	assert.Equal(t, TypePhone, got[1].Type)
	assert.Equal(t, "639171234567", got[1].Value)
	assert.Equal(t, "639171234567", got[2].Value)
	assert.Equal(t, TypeEmail, got[3].Type)
	assert.Equal(t, "juan@example.com", got[3].Value)
	assert.Equal(t, TypeFacebook, got[4].Type)
	assert.Equal(t, "juan.delacruz", got[4].Value)
}

func TestNormalizeEmptyInput(t *testing.T) {
	got := Normalize(SearchInput{}, "63")
	assert.Empty(t, got)
}

func TestCandidateKey(t *testing.T) {
	c := Candidate{Type: TypePhone, Value: "639171234567"}
	assert.Equal(t, "PHONE:639171234567", c.Key())
}
