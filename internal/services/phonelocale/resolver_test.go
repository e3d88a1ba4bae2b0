// File: internal/services/phonelocale/resolver_test.go
package phonelocale

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestResolveBuenosAiresMobile(t *testing.T) {
    // +54 9 11 ... is a CABA mobile: the 9 sits between country and area code.
    locale := Resolve("+5491155550123")
    require.NotNil(t, locale)
    assert.Equal(t, "AR", locale.CountryCode)
    assert.Equal(t, "Argentina", locale.Country)
    assert.Equal(t, "Buenos Aires (CABA y GBA)", locale.Region)
    assert.Equal(t, "Buenos Aires (CABA y GBA)", locale.ShortLabel())
    assert.Equal(t, "Buenos Aires (CABA y GBA), Argentina", locale.FullLabel())
}

func TestResolveProvincialLandline(t *testing.T) {
    locale := Resolve("+542215550123")
    require.NotNil(t, locale)
    assert.Equal(t, "La Plata", locale.Region)

    locale = Resolve("+543515550123")
    require.NotNil(t, locale)
    assert.Equal(t, "Córdoba", locale.Region)
}

func TestResolveFourDigitAreaCode(t *testing.T) {
    locale := Resolve("+542901555012")
    require.NotNil(t, locale)
    assert.Equal(t, "Ushuaia", locale.Region)
}

func TestResolveBareLocalNumberDefaultsToArgentina(t *testing.T) {
    locale := Resolve("1155550123")
    require.NotNil(t, locale)
    assert.Equal(t, "AR", locale.CountryCode)
    assert.Equal(t, "Buenos Aires (CABA y GBA)", locale.Region)
}

func TestResolveForeignNumberHasNoRegion(t *testing.T) {
    locale := Resolve("+14155552671")
    require.NotNil(t, locale)
    assert.Equal(t, "US", locale.CountryCode)
    assert.Equal(t, "Estados Unidos", locale.Country)
    assert.Empty(t, locale.Region)
    assert.Equal(t, "Estados Unidos", locale.ShortLabel())
}

func TestResolveUnparsableReturnsNil(t *testing.T) {
    for _, input := range []string{"", "   ", "no-es-un-numero", "+", "++54"} {
        assert.Nil(t, Resolve(input), "input %q", input)
    }
}

func TestResolveIsDeterministic(t *testing.T) {
    first := Resolve("+5491155550123")
    require.NotNil(t, first)
    for i := 0; i < 20; i++ {
        assert.Equal(t, first, Resolve("+5491155550123"))
    }
}

func TestLongestPrefixMatchPrefersLongerCode(t *testing.T) {
    // The real table has no nested prefixes, so the preference is checked
    // against a synthetic table where "11" and "112" collide.
    table := map[string]string{
        "11":   "short",
        "112":  "longer",
        "1123": "longest",
    }

    assert.Equal(t, "longest", longestPrefixMatch("11235555", table))
    assert.Equal(t, "longer", longestPrefixMatch("11295555", table))
    assert.Equal(t, "short", longestPrefixMatch("11855555", table))
    assert.Equal(t, "", longestPrefixMatch("99855555", table))
    assert.Equal(t, "", longestPrefixMatch("1", table), "input shorter than every code")
}
