package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2024/04/01", "2024-04-01", true},
		{"2024.4.1", "2024-04-01", true},
		{"2024-4-1", "2024-04-01", true},
		{" 2024-04-01 ", "2024-04-01", true},
		{"01/04/2024", "2024-04-01", true},
		{"1-4-2024", "2024-04-01", true},
		{"01.04.2024", "2024-04-01", true},
		{"01/04/24", "2024-04-01", true},
		{"01/04/75", "1975-04-01", true},
		{"31/02/2024", "", false},
		{"2024-13-01", "", false},
		{"tomorrow", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := fixDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	_, ok := parseDate("2024-02-29")
	assert.True(t, ok)

	_, ok = parseDate("2023-02-29")
	assert.False(t, ok)

	_, ok = parseDate("2024-4-1")
	assert.False(t, ok)
}

func TestFixAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1 500,00 €", "1500.00", true},
		{"$1,234.5", "1234.50", true},
		{"1.234,56", "1234.56", true},
		{"12,3", "12.30", true},
		{"€ 99", "99.00", true},
		{"12.345", "12.35", true},
		{"0,994", "0.99", true},
		{"9.995", "10.00", true},
		{"000123", "123.00", true},
		{"999 999 999 999 999,99", "999999999999999.99", true},
		{"99999999999999999", "", false},
		{"-10", "", false},
		{"free", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := fixAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		cents  int64
		wantOK bool
	}{
		{"1500", 150000, true},
		{"1500.5", 150050, true},
		{"0.05", 5, true},
		{"999999999999999.99", 99999999999999999, true},
		{"9999999999999999", 0, false},
		{"99999999999999999", 0, false},
		{"1500.555", 0, false},
		{"1,500", 0, false},
		{"-1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, ok := parseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.cents, v.Cents)
		})
	}
}

func TestFixEmail(t *testing.T) {
	got, ok := fixEmail("  Jean.Dupont@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "jean.dupont@example.com", got)

	_, ok = fixEmail("jean at example")
	assert.False(t, ok)
}

func TestParseEmail_MixedCase(t *testing.T) {
	v, ok := parseEmail("Jean.Dupont@Example.com")
	assert.True(t, ok)
	assert.Equal(t, "jean.dupont@example.com", v.Text)

	_, ok = parseEmail("Jean.Dupont@Example")
	assert.False(t, ok)
}

func TestFixPhone(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"+33 6 12 34 56 78", "+33612345678", true},
		{"06.12.34.56.78", "0612345678", true},
		{"(555) 123-4567", "5551234567", true},
		{"12+34", "", false},
		{"123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := fixPhone(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddressRules(t *testing.T) {
	_, ok := parseAddress("12 rue  de la Paix")
	assert.False(t, ok)

	_, ok = parseAddress("Paris")
	assert.False(t, ok)

	got, ok := fixAddress("12 rue de la Paix\n  75002   Paris\n")
	assert.True(t, ok)
	assert.Equal(t, "12 rue de la Paix, 75002 Paris", got)

	_, ok = parseAddress(got)
	assert.True(t, ok)

	_, ok = fixAddress("  Rome \n")
	assert.False(t, ok)
}
