// Package astro computes sun-sign profiles from birth details and answers
// free-text questions about them with fixed templates.
package astro

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Sign string

const (
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
)

// Title returns the display form of the sign, e.g. "Leo".
func (s Sign) Title() string {
	return titleCase(string(s))
}

// Casers carry state and must not be shared across goroutines.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// MonthDay is a calendar position ignoring the year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// Before reports whether m sorts before o in (month, day) order.
func (m MonthDay) Before(o MonthDay) bool {
	if m.Month != o.Month {
		return m.Month < o.Month
	}
	return m.Day < o.Day
}

// ZodiacRange is the inclusive span of days assigned to one sign.
type ZodiacRange struct {
	Sign  Sign
	Start MonthDay
	End   MonthDay
}

// Wraps reports whether the range crosses the year boundary.
func (r ZodiacRange) Wraps() bool {
	return r.End.Before(r.Start)
}

// Contains reports whether md falls inside the range, both ends inclusive.
func (r ZodiacRange) Contains(md MonthDay) bool {
	if r.Wraps() {
		return !md.Before(r.Start) || !r.End.Before(md)
	}
	return !md.Before(r.Start) && !r.End.Before(md)
}

type SignAttributes struct {
	Element  string
	Modality string
	Short    string
}

var zodiacRanges = [...]ZodiacRange{
	{Capricorn, MonthDay{time.December, 22}, MonthDay{time.January, 19}},
	{Aquarius, MonthDay{time.January, 20}, MonthDay{time.February, 18}},
	{Pisces, MonthDay{time.February, 19}, MonthDay{time.March, 20}},
	{Aries, MonthDay{time.March, 21}, MonthDay{time.April, 19}},
	{Taurus, MonthDay{time.April, 20}, MonthDay{time.May, 20}},
	{Gemini, MonthDay{time.May, 21}, MonthDay{time.June, 21}},
	{Cancer, MonthDay{time.June, 22}, MonthDay{time.July, 22}},
	{Leo, MonthDay{time.July, 23}, MonthDay{time.August, 22}},
	{Virgo, MonthDay{time.August, 23}, MonthDay{time.September, 22}},
	{Libra, MonthDay{time.September, 23}, MonthDay{time.October, 23}},
	{Scorpio, MonthDay{time.October, 24}, MonthDay{time.November, 21}},
	{Sagittarius, MonthDay{time.November, 22}, MonthDay{time.December, 21}},
}

var signAttributes = map[Sign]SignAttributes{
	Aries:       {Element: "Fire", Modality: "Cardinal", Short: "Bold, energetic, initiating."},
	Taurus:      {Element: "Earth", Modality: "Fixed", Short: "Practical, steady, sensual."},
	Gemini:      {Element: "Air", Modality: "Mutable", Short: "Curious, communicative, adaptable."},
	Cancer:      {Element: "Water", Modality: "Cardinal", Short: "Caring, intuitive, home-oriented."},
	Leo:         {Element: "Fire", Modality: "Fixed", Short: "Confident, expressive, generous."},
	Virgo:       {Element: "Earth", Modality: "Mutable", Short: "Analytical, service-oriented, detail-focused."},
	Libra:       {Element: "Air", Modality: "Cardinal", Short: "Diplomatic, partnership-focused, balanced."},
	Scorpio:     {Element: "Water", Modality: "Fixed", Short: "Intense, transformative, private."},
	Sagittarius: {Element: "Fire", Modality: "Mutable", Short: "Adventurous, philosophical, freedom-loving."},
	Capricorn:   {Element: "Earth", Modality: "Cardinal", Short: "Ambitious, disciplined, practical."},
	Aquarius:    {Element: "Air", Modality: "Fixed", Short: "Innovative, community-minded, unconventional."},
	Pisces:      {Element: "Water", Modality: "Mutable", Short: "Compassionate, imaginative, dreamy."},
}

// Ranges returns a copy of the zodiac table in resolution order.
func Ranges() []ZodiacRange {
	out := make([]ZodiacRange, len(zodiacRanges))
	copy(out, zodiacRanges[:])
	return out
}

// Attributes looks up the static attributes of a sign.
func Attributes(s Sign) (SignAttributes, bool) {
	attrs, ok := signAttributes[s]
	return attrs, ok
}

// ResolveSign maps a month and day to its sun sign. The table covers every
// day of the year, so the Capricorn fallback is never reached with valid input.
func ResolveSign(month time.Month, day int) Sign {
	md := MonthDay{Month: month, Day: day}
	for _, r := range zodiacRanges {
		if r.Contains(md) {
			return r.Sign
		}
	}
	return Capricorn
}
