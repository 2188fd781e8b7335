package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"chedoparti/pkg/locale"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var supportedRegions = []string{
	"AR",
	"UY",
	"ES",
	"IL",
	"US",
}

// NormalizePhone converts a phone number to E.164. Numbers that do not parse
// in any supported region come back empty.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	// Numbers carrying an international prefix name their own region.
	if country := locale.InferCountryFromPhone(phone); country != nil {
		if parsedNumber, err := phonenumbers.Parse(phone, country.Code); err == nil {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}

	// Local numbers are ambiguous across regions, so only a number that is
	// actually valid for a region is accepted as belonging to it.
	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}

// NormalizePlayersMap normalizes an open match roster. Player names get
// whitespace cleanup, phones go to E.164; entries that end up with an empty
// name are dropped.
func NormalizePlayersMap(players map[string]string) map[string]string {
	normalized := map[string]string{}
	for name, phone := range players {
		name = NormalizeName(name)
		if name == "" {
			continue
		}
		normalized[name] = NormalizePhone(phone)
	}
	return normalized
}
