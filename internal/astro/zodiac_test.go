package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSign_Boundaries(t *testing.T) {
	cases := []struct {
		month time.Month
		day   int
		want  Sign
	}{
		{time.December, 22, Capricorn},
		{time.January, 19, Capricorn},
		{time.December, 21, Sagittarius},
		{time.January, 20, Aquarius},
		{time.April, 20, Taurus},
		{time.April, 19, Aries},
		{time.February, 29, Pisces},
		{time.December, 31, Capricorn},
		{time.January, 1, Capricorn},
		{time.August, 1, Leo},
		{time.October, 23, Libra},
		{time.October, 24, Scorpio},
	}

	for _, tc := range cases {
		t.Run(tc.month.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveSign(tc.month, tc.day), "%s %d", tc.month, tc.day)
		})
	}
}

func TestZodiacRanges_PartitionYear(t *testing.T) {
	// 2024 is a leap year, so this walks all 366 month/day pairs.
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := 0
	for d := start; d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		md := MonthDay{d.Month(), d.Day()}
		matches := 0
		for _, r := range Ranges() {
			if r.Contains(md) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "%s %d must belong to exactly one range", d.Month(), d.Day())
		days++
	}
	assert.Equal(t, 366, days)
}

func TestZodiacRanges_OnlyCapricornWraps(t *testing.T) {
	var wrapping []Sign
	for _, r := range Ranges() {
		if r.Wraps() {
			wrapping = append(wrapping, r.Sign)
		}
	}
	assert.Equal(t, []Sign{Capricorn}, wrapping)
}

func TestSignAttributes_Bijection(t *testing.T) {
	ranges := Ranges()
	require.Len(t, ranges, 12)
	require.Len(t, signAttributes, 12)

	seen := map[Sign]bool{}
	for _, r := range ranges {
		assert.False(t, seen[r.Sign], "duplicate range for %s", r.Sign)
		seen[r.Sign] = true

		attrs, ok := Attributes(r.Sign)
		require.True(t, ok, "no attributes for %s", r.Sign)
		assert.Contains(t, []string{"Fire", "Earth", "Air", "Water"}, attrs.Element)
		assert.Contains(t, []string{"Cardinal", "Fixed", "Mutable"}, attrs.Modality)
		assert.NotEmpty(t, attrs.Short)
	}
	for s := range signAttributes {
		assert.True(t, seen[s], "attributes for %s have no range", s)
	}
}

func TestSign_Title(t *testing.T) {
	assert.Equal(t, "Leo", Leo.Title())
	assert.Equal(t, "Sagittarius", Sagittarius.Title())
}

func TestRanges_ReturnsCopy(t *testing.T) {
	r := Ranges()
	r[0].Sign = Leo
	assert.Equal(t, Capricorn, ResolveSign(time.January, 1))
}
