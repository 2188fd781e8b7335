package locale

import (
	"strings"
)

const (
	DefaultTimezone = "UTC"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "AR", "ES")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+54", "54"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "America/Argentina/Buenos_Aires")
}

var (
	Countries = map[string]Country{
		"AR": {
			Code:            "AR",
			Name:            "Argentina",
			PhonePrefixes:   []string{"+54", "54"},
			DefaultTimezone: "America/Argentina/Buenos_Aires",
		},
		"UY": {
			Code:            "UY",
			Name:            "Uruguay",
			PhonePrefixes:   []string{"+598", "598"},
			DefaultTimezone: "America/Montevideo",
		},
		"ES": {
			Code:            "ES",
			Name:            "Spain",
			PhonePrefixes:   []string{"+34"},
			DefaultTimezone: "Europe/Madrid",
		},
		"IL": {
			Code:            "IL",
			Name:            "Israel",
			PhonePrefixes:   []string{"+972", "972"},
			DefaultTimezone: "Asia/Jerusalem",
		},
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1"},
			DefaultTimezone: "America/New_York",
		},
	}

	TimeZoneTags = map[string][]string{
		"AR": {"America/Argentina/Buenos_Aires", "America/Argentina/Cordoba", "America/Buenos_Aires"},
		"UY": {"America/Montevideo"},
		"ES": {"Europe/Madrid", "Atlantic/Canary"},
		"IL": {"Asia/Jerusalem", "Israel", "Asia/Tel_Aviv"},
		"US": {"America/New_York", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
	}
)

// DetectRegion maps an IANA timezone name to a supported region. Unknown
// timezones fall back to "AR", the home market.
func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return "AR"
}
