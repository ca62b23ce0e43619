package country

import (
	"fmt"
	"strings"
)

// ISO 3166-1 alpha-2 codes for the countries the directory UI knows how to
// render. Unknown countries fall back to the UN flag rather than failing.
var countryCodes = map[string]string{
	"afghanistan":          "AF",
	"albania":              "AL",
	"algeria":              "DZ",
	"argentina":            "AR",
	"australia":            "AU",
	"austria":              "AT",
	"bangladesh":           "BD",
	"belgium":              "BE",
	"brazil":               "BR",
	"canada":               "CA",
	"china":                "CN",
	"colombia":             "CO",
	"denmark":              "DK",
	"egypt":                "EG",
	"finland":              "FI",
	"france":               "FR",
	"germany":              "DE",
	"greece":               "GR",
	"india":                "IN",
	"indonesia":            "ID",
	"iran":                 "IR",
	"iraq":                 "IQ",
	"ireland":              "IE",
	"israel":               "IL",
	"italy":                "IT",
	"japan":                "JP",
	"mexico":               "MX",
	"netherlands":          "NL",
	"new zealand":          "NZ",
	"nigeria":              "NG",
	"norway":               "NO",
	"pakistan":             "PK",
	"poland":               "PL",
	"portugal":             "PT",
	"russia":               "RU",
	"saudi arabia":         "SA",
	"south africa":         "ZA",
	"south korea":          "KR",
	"spain":                "ES",
	"sweden":               "SE",
	"switzerland":          "CH",
	"turkey":               "TR",
	"ukraine":              "UA",
	"united arab emirates": "AE",
	"united kingdom":       "GB",
	"united states":        "US",
	"vietnam":              "VN",
}

const fallbackCode = "UN"

// Code resolves a display country name to its alpha-2 code. The lookup is
// case-insensitive; unknown names return the "UN" fallback code.
func Code(name string) string {
	if code, ok := countryCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return fallbackCode
}

// Known reports whether the country resolves to a real flag.
func Known(name string) bool {
	_, ok := countryCodes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// FlagURL returns the CDN URL the directory UI loads the flag image from.
func FlagURL(name string) string {
	return fmt.Sprintf("https://flagcdn.com/w80/%s.png", strings.ToLower(Code(name)))
}
