// File: internal/services/phonelocale/resolver.go

// Package phonelocale resolves a patient phone number into a country and,
// for Argentine numbers, a regional label from the area-code table. Pure
// lookup, no I/O; unparsable input resolves to nil rather than an error so
// views can simply skip the location badge.
package phonelocale

import (
    "strings"

    "github.com/nyaruka/phonenumbers"
)

// Locale is the resolved location of a phone number. Region is "" when the
// country is known but no area code matched.
type Locale struct {
    CountryCode string // ISO 3166-1 alpha-2
    Country     string // display name, raw code when unknown
    Region      string
}

// ShortLabel is the compact badge text: region when available, else country.
func (l *Locale) ShortLabel() string {
    if l.Region != "" {
        return l.Region
    }
    return l.Country
}

// FullLabel combines region and country.
func (l *Locale) FullLabel() string {
    if l.Region != "" {
        return l.Region + ", " + l.Country
    }
    return l.Country
}

// Resolve parses a phone number and maps it to a Locale. Returns nil for
// anything the parser rejects; it never panics and never performs I/O, and
// identical input always yields identical output.
func Resolve(phoneNumber string) *Locale {
    trimmed := strings.TrimSpace(phoneNumber)
    if trimmed == "" {
        return nil
    }

    // Numbers come from the messaging gateway in E.164, but operators also
    // paste bare local numbers; default those to AR.
    parsed, err := phonenumbers.Parse(trimmed, "AR")
    if err != nil {
        return nil
    }
    if !phonenumbers.IsValidNumber(parsed) {
        return nil
    }

    code := phonenumbers.GetRegionCodeForNumber(parsed)
    if code == "" {
        return nil
    }

    locale := &Locale{CountryCode: code, Country: countryDisplayName(code)}
    if code == "AR" {
        national := phonenumbers.GetNationalSignificantNumber(parsed)
        locale.Region = argentinaRegion(national)
    }
    return locale
}

func countryDisplayName(code string) string {
    if name, ok := countryNames[code]; ok {
        return name
    }
    return code
}

// argentinaRegion strips the mobile "9" prefix and finds the longest
// matching area code.
func argentinaRegion(national string) string {
    // Mobile numbers carry a leading 9 between country code and area code.
    national = strings.TrimPrefix(national, "9")
    return longestPrefixMatch(national, argentinaAreaCodes)
}

// longestPrefixMatch returns the label of the longest table prefix of
// national, or "" when none matches.
func longestPrefixMatch(national string, table map[string]string) string {
    for length := maxAreaCodeLen; length >= minAreaCodeLen; length-- {
        if len(national) < length {
            continue
        }
        if label, ok := table[national[:length]]; ok {
            return label
        }
    }
    return ""
}
