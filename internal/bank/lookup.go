// internal/bank/lookup.go

// Package bank identifies US banks by ABA routing number. The table covers
// common institutions; unknown but checksum-valid numbers resolve to a
// Federal Reserve region and, where the prefix is distinctive, a best guess.
package bank

import (
	"sort"
	"strings"
)

// routingTable maps known routing numbers to bank names.
var routingTable = map[string]string{
	// Major banks
	"021000021": "Chase Bank",
	"021000322": "Chase Bank",
	"022000020": "Chase Bank",
	"125000024": "Wells Fargo Bank",
	"121000248": "Wells Fargo Bank",
	"111000025": "Bank of America",
	"026009593": "Bank of America",
	"121042882": "Wells Fargo Bank",
	"053000196": "Bank of America",
	"054001204": "Bank of America",
	"063100277": "JPMorgan Chase Bank",
	"267084131": "JPMorgan Chase Bank",
	"021200025": "JPMorgan Chase Bank",

	// Regional banks
	"122105278": "Wells Fargo Bank",
	"114000093": "PNC Bank",
	"043000096": "PNC Bank",
	"054000030": "Citizens Bank",
	"211274450": "TD Bank",
	"031201360": "TD Bank",
	"031100209": "TD Bank",
	"101000019": "Bank of the West",
	"321270742": "Huntington National Bank",
	"044000024": "Huntington National Bank",

	// Credit unions and others
	"307070115": "Navy Federal Credit Union",
	"256074974": "Navy Federal Credit Union",
	"211391825": "USAA Federal Savings Bank",
	"314074269": "Pentagon Federal Credit Union",
	"253177832": "Pentagon Federal Credit Union",
	"263179817": "Publix Employees Federal Credit Union (PEFCU)",
	"322271627": "Regions Bank",
	"062000019": "Regions Bank",
	"065400137": "KeyBank",
	"041001039": "KeyBank",

	// Online banks
	"031176110": "Ally Bank",
	"124303120": "Capital One Bank",
	"051405515": "Capital One Bank",
	"103100195": "ING Direct (Capital One 360)",
	"031100649": "Discover Bank",
	"011103093": "American Express Bank",
}

// routingRegions maps the first four digits to Federal Reserve routing regions.
var routingRegions = map[string]string{
	"0210": "Boston, MA",
	"0211": "Boston, MA",
	"0212": "New York, NY",
	"0213": "New York, NY",
	"0214": "Philadelphia, PA",
	"0215": "Philadelphia, PA",
	"0216": "Cleveland, OH",
	"0217": "Cleveland, OH",
	"0218": "Richmond, VA",
	"0219": "Richmond, VA",
	"0220": "Atlanta, GA",
	"0221": "Atlanta, GA",
	"0222": "Chicago, IL",
	"0223": "Chicago, IL",
	"0224": "St. Louis, MO",
	"0225": "St. Louis, MO",
	"0226": "Minneapolis, MN",
	"0227": "Minneapolis, MN",
	"0228": "Kansas City, MO",
	"0229": "Kansas City, MO",
	"0230": "Dallas, TX",
	"0231": "Dallas, TX",
	"0232": "San Francisco, CA",
	"0233": "San Francisco, CA",
}

// LookupResult describes a routing number resolution.
type LookupResult struct {
	Valid         bool   `json:"valid"`
	BankName      string `json:"bank_name,omitempty"`
	RoutingNumber string `json:"routing_number,omitempty"`
	Region        string `json:"region,omitempty"`
	Source        string `json:"source,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Suggestion is a partial-prefix match candidate.
type Suggestion struct {
	RoutingNumber    string `json:"routing_number"`
	BankName         string `json:"bank_name"`
	FormattedRouting string `json:"formatted_routing"`
}

// ValidRoutingNumber validates a routing number with the ABA checksum:
// 3,7,1 coefficients cycled over the nine digits, total divisible by ten.
func ValidRoutingNumber(routingNumber string) bool {
	if len(routingNumber) != 9 {
		return false
	}
	coefficients := [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}
	total := 0
	for i := 0; i < 9; i++ {
		d := routingNumber[i]
		if d < '0' || d > '9' {
			return false
		}
		total += int(d-'0') * coefficients[i]
	}
	return total%10 == 0
}

// Lookup resolves a routing number to a bank. Dashes and spaces are stripped
// before validation.
func Lookup(routingNumber string) LookupResult {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(routingNumber)

	if !ValidRoutingNumber(cleaned) {
		return LookupResult{Valid: false, Error: "invalid routing number format or checksum"}
	}

	region := routingRegions[cleaned[:4]]
	if region == "" {
		region = "Unknown Region"
	}

	if name, ok := routingTable[cleaned]; ok {
		return LookupResult{
			Valid:         true,
			BankName:      name,
			RoutingNumber: cleaned,
			Region:        region,
			Source:        "direct_match",
		}
	}

	guess := prefixGuess(cleaned)
	result := LookupResult{
		Valid:         true,
		BankName:      guess,
		RoutingNumber: cleaned,
		Region:        region,
		Source:        "pattern_match",
	}
	if guess == "" {
		result.BankName = "Unknown Bank"
		result.Source = "region_only"
	}
	return result
}

func prefixGuess(routingNumber string) string {
	prefixes := []struct {
		codes []string
		name  string
	}{
		{[]string{"021", "267", "063"}, "Chase Bank (likely)"},
		{[]string{"121", "125"}, "Wells Fargo Bank (likely)"},
		{[]string{"111", "026", "053", "054"}, "Bank of America (likely)"},
		{[]string{"114", "043"}, "PNC Bank (likely)"},
		{[]string{"322", "062"}, "Regions Bank (likely)"},
	}
	for _, p := range prefixes {
		for _, code := range p.codes {
			if strings.HasPrefix(routingNumber, code) {
				return p.name
			}
		}
	}
	return ""
}

// Suggestions returns known banks whose routing numbers start with the given
// prefix, sorted by bank name and capped at ten entries. Prefixes shorter
// than three digits return nothing.
func Suggestions(partial string) []Suggestion {
	if len(partial) < 3 {
		return nil
	}
	var out []Suggestion
	for routing, name := range routingTable {
		if strings.HasPrefix(routing, partial) {
			out = append(out, Suggestion{
				RoutingNumber:    routing,
				BankName:         name,
				FormattedRouting: routing[:3] + "-" + routing[3:6] + "-" + routing[6:],
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BankName < out[j].BankName })
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}
