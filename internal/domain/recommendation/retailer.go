package recommendation

import "strings"

const DefaultRetailerDomain = "amazon.com"

var retailerDomains = map[string]string{
	"GB": "amazon.co.uk",
	"DE": "amazon.de",
	"FR": "amazon.fr",
	"CA": "amazon.ca",
	"AU": "amazon.com.au",
}

// ResolveCountry picks the body locale over the header and upper-cases it.
// Values are used as given; "en-GB" is not parsed down to "GB".
func ResolveCountry(locale, countryHeader string) string {
	if locale != "" {
		return strings.ToUpper(locale)
	}
	return strings.ToUpper(countryHeader)
}

// RetailerDomain maps an upper-cased country code to a storefront host.
func RetailerDomain(country string) string {
	if strings.HasPrefix(country, "UK") {
		return "amazon.co.uk"
	}
	if domain, ok := retailerDomains[country]; ok {
		return domain
	}
	return DefaultRetailerDomain
}

// RetailerDomains lists every storefront host that can be returned.
func RetailerDomains() []string {
	return []string{DefaultRetailerDomain, "amazon.co.uk", "amazon.de", "amazon.fr", "amazon.ca", "amazon.com.au"}
}
