// internal/bank/lookup_test.go
package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRoutingNumber(t *testing.T) {
	// Real routing numbers all satisfy the ABA checksum.
	assert.True(t, ValidRoutingNumber("021000021"))
	assert.True(t, ValidRoutingNumber("121000248"))
	assert.True(t, ValidRoutingNumber("026009593"))

	assert.False(t, ValidRoutingNumber(""))
	assert.False(t, ValidRoutingNumber("12345678"))   // too short
	assert.False(t, ValidRoutingNumber("1234567890")) // too long
	assert.False(t, ValidRoutingNumber("02100002a"))  // non-digit
	assert.False(t, ValidRoutingNumber("021000022"))  // checksum off by one
}

func TestLookupDirectMatch(t *testing.T) {
	res := Lookup("021000021")
	assert.True(t, res.Valid)
	assert.Equal(t, "Chase Bank", res.BankName)
	assert.Equal(t, "direct_match", res.Source)
	assert.Equal(t, "Boston, MA", res.Region)
}

func TestLookupStripsSeparators(t *testing.T) {
	res := Lookup("021-000 021")
	assert.True(t, res.Valid)
	assert.Equal(t, "021000021", res.RoutingNumber)
}

func TestLookupInvalid(t *testing.T) {
	res := Lookup("000000001")
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Error)
}

func TestLookupPatternMatch(t *testing.T) {
	// Checksum-valid Wells Fargo prefix not present in the direct table.
	res := Lookup("121042484")
	assert.True(t, res.Valid)
	assert.Equal(t, "Wells Fargo Bank (likely)", res.BankName)
	assert.Equal(t, "pattern_match", res.Source)
}

func TestSuggestions(t *testing.T) {
	sugg := Suggestions("021")
	assert.NotEmpty(t, sugg)
	for _, s := range sugg {
		assert.Equal(t, "021", s.RoutingNumber[:3])
		assert.Len(t, s.FormattedRouting, 11)
	}
	// Sorted by bank name.
	for i := 1; i < len(sugg); i++ {
		assert.LessOrEqual(t, sugg[i-1].BankName, sugg[i].BankName)
	}

	assert.Empty(t, Suggestions("02"))
	assert.Empty(t, Suggestions("999"))
}
