package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ana.torres@mwn.example.com"))
	assert.True(t, ValidateEmail("front-desk+test@clinic.io"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+155501004242"))
	assert.True(t, ValidatePhone("(555) 010-04242"))
	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("phone"))
}

func TestValidateBookingToken(t *testing.T) {
	assert.True(t, ValidateBookingToken("MWN-C-20260120-001"))
	assert.True(t, ValidateBookingToken("MWN-N-20261231-999"))

	assert.False(t, ValidateBookingToken("MWN-CC-20260120-001"))
	assert.False(t, ValidateBookingToken("MWN-c-20260120-001"))
	assert.False(t, ValidateBookingToken("MWN-C-2026012-001"))
	assert.False(t, ValidateBookingToken("MWN-C-20260120-1"))
	assert.False(t, ValidateBookingToken("ABC-C-20260120-001"))
	assert.False(t, ValidateBookingToken(""))
}

func TestValidateNamePart(t *testing.T) {
	assert.True(t, ValidateNamePart("Ana"))
	assert.True(t, ValidateNamePart("O'Brien"))
	assert.True(t, ValidateNamePart("Smith-Jones"))
	assert.False(t, ValidateNamePart("A"))
	assert.False(t, ValidateNamePart("R2D2"))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Ana Torres", FormatName("ana TORRES"))
	assert.Equal(t, "Smith-Jones", FormatName("smith-jones"))
	assert.Equal(t, "", FormatName(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeString(`<script>alert("1")</script>`))
	assert.Equal(t, "plain text", SanitizeString("plain text"))
}
