package simulation

import "strings"

// InternationalPartner carries every trunk-haul leg between hubs.
const InternationalPartner = "IntelliTrack Global"

// DefaultLocalPartner handles last-mile delivery in countries without a
// dedicated entry.
const DefaultLocalPartner = "USPS"

type partnerRule struct {
	country string
	partner string
}

// defaultPartners is matched against the upper-cased country: multi-word
// keys by substring, single-word keys by whole word so "UK" does not match
// "UKRAINE".
var defaultPartners = []partnerRule{
	{"USA", "FedEx"},
	{"UNITED STATES", "FedEx"},
	{"UNITED KINGDOM", "UPS UK"},
	{"UK", "UPS UK"},
	{"GERMANY", "DHL Express"},
	{"JAPAN", "Japan Post"},
}

// PartnerTable resolves the local delivery partner for a country.
type PartnerTable struct {
	rules    []partnerRule
	fallback string
}

// NewPartnerTable builds a table from country->partner pairs. Pairs are
// matched in the given order.
func NewPartnerTable(fallback string, pairs ...[2]string) PartnerTable {
	t := PartnerTable{fallback: fallback}
	for _, p := range pairs {
		t.rules = append(t.rules, partnerRule{country: strings.ToUpper(p[0]), partner: p[1]})
	}
	return t
}

// DefaultPartnerTable is the table used by NewEngine.
func DefaultPartnerTable() PartnerTable {
	return PartnerTable{rules: defaultPartners, fallback: DefaultLocalPartner}
}

// ForCountry returns the partner for country, or the fallback.
func (t PartnerTable) ForCountry(country string) string {
	upper := strings.ToUpper(strings.TrimSpace(country))
	if upper != "" {
		for _, r := range t.rules {
			if countryMatches(upper, r.country) {
				return r.partner
			}
		}
	}
	return t.fallback
}

func countryMatches(country, key string) bool {
	if strings.Contains(key, " ") {
		return strings.Contains(country, key)
	}
	words := strings.FieldsFunc(country, func(r rune) bool {
		return r < 'A' || r > 'Z'
	})
	for _, w := range words {
		if w == key {
			return true
		}
	}
	return false
}
