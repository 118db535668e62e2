package astro

import (
	"fmt"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
)

// Clock supplies the current time used for age calculation.
type Clock func() time.Time

// Builder turns raw birth details into a Profile. The zero value is not
// usable; construct one with NewBuilder.
type Builder struct {
	now Clock
}

type Option func(*Builder)

func WithClock(c Clock) Option {
	return func(b *Builder) {
		b.now = c
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build computes a profile using the wall clock for age.
func Build(name, date, clock, place string) (*models.Profile, error) {
	return defaultBuilder.Build(name, date, clock, place)
}

// Build parses the birth date and time, resolves the sun sign and renders the
// profile. The only failure is unparsable date/time text, reported as a
// *DateTimeError. An empty name still yields a profile.
func (b *Builder) Build(name, date, clock, place string) (*models.Profile, error) {
	birth, err := ParseDateTime(date, clock)
	if err != nil {
		return nil, err
	}

	sign := ResolveSign(birth.Month(), birth.Day())
	attrs, _ := Attributes(sign)

	return &models.Profile{
		Name:          name,
		BirthDatetime: birth.Format(ISOLayout),
		Place:         place,
		SunSign:       string(sign),
		Element:       attrs.Element,
		Mode:          attrs.Modality,
		Age:           b.age(birth),
		ShortProfile:  attrs.Short,
		FullText: fmt.Sprintf("%s, your Sun sign is %s — %s (%s element, %s modality).",
			name, sign.Title(), attrs.Short, attrs.Element, attrs.Modality),
	}, nil
}

// age is nil when no usable clock is available. Birth dates in the future are
// not rejected and produce a negative age.
func (b *Builder) age(birth time.Time) (age *int) {
	defer func() {
		if recover() != nil {
			age = nil
		}
	}()

	if b == nil || b.now == nil {
		return nil
	}
	now := b.now()
	if now.IsZero() {
		return nil
	}

	years := now.Year() - birth.Year()
	if (MonthDay{now.Month(), now.Day()}).Before(MonthDay{birth.Month(), birth.Day()}) {
		years--
	}
	return &years
}
