package astro

import (
	"strings"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
)

const (
	EmptyQuestionPrompt = "Please type a question about your career, love life, or personality."
	placeholder         = "unknown"
)

type Category string

const (
	CategoryCareer   Category = "career"
	CategoryLove     Category = "love"
	CategoryHealth   Category = "health"
	CategoryFallback Category = "fallback"
	CategoryEmpty    Category = "empty"
)

// answerFields are the profile values a template may interpolate.
type answerFields struct {
	Name    string
	Sign    string
	Element string
	Mode    string
	Short   string
}

type rule struct {
	category  Category
	keywords  []string
	templates []func(answerFields) string
}

// Rules are evaluated top to bottom; the first whose keyword occurs in the
// question wins. Only the first template of a rule is ever rendered.
var rules = []rule{
	{
		category: CategoryCareer,
		keywords: []string{"career", "job", "work", "promotion"},
		templates: []func(answerFields) string{
			func(f answerFields) string {
				return "For a " + f.Sign + " (element: " + f.Element + "), steady progress and practical planning usually bring the best results. Focus on consistent effort and visible small wins."
			},
			func(f answerFields) string {
				return f.Name + ", your sign " + f.Sign + " suggests persistence will win—break big goals into monthly milestones and showcase measurable achievements."
			},
			func(f answerFields) string {
				return "This period favors skill-building. For " + f.Sign + ", sharpening practical skills and networking steadily helps career growth."
			},
		},
	},
	{
		category: CategoryLove,
		keywords: []string{"love", "relationship", "partner", "marriage"},
		templates: []func(answerFields) string{
			func(f answerFields) string {
				return f.Name + ", as a " + f.Sign + ", you value " + f.Element + "-style expression. Be clear about needs and listen; steady demonstrations of care matter more than grand gestures."
			},
			func(f answerFields) string {
				return "For " + f.Sign + ", compatible energy often comes from signs that complement your element. Prioritize honest conversations and shared values."
			},
		},
	},
	{
		category: CategoryHealth,
		keywords: []string{"health", "fitness", "wellness"},
		templates: []func(answerFields) string{
			func(f answerFields) string {
				return "Small, regular routines suit " + f.Sign + " — aim for balanced sleep, moderate exercise, and mindful breaks."
			},
		},
	},
}

func fallbackAnswer(f answerFields) string {
	return f.Name + ", " + f.Sign + " energy combines " + f.Element + " traits — remember your strengths ( " + f.Short + " ). Try to convert them into one concrete action this week."
}

// Answer returns the templated reply to a free-text question about p.
func Answer(question string, p *models.Profile) string {
	text, _ := Classify(question, p)
	return text
}

// Classify is Answer that also reports which category produced the reply.
func Classify(question string, p *models.Profile) (string, Category) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return EmptyQuestionPrompt, CategoryEmpty
	}

	f := fieldsOf(p)
	for _, r := range rules {
		if containsAny(q, r.keywords) {
			return r.templates[0](f), r.category
		}
	}
	return fallbackAnswer(f), CategoryFallback
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func fieldsOf(p *models.Profile) answerFields {
	if p == nil {
		p = &models.Profile{}
	}
	sign := p.SunSign
	if sign == "" {
		sign = placeholder
	}
	return answerFields{
		Name:    orPlaceholder(p.Name),
		Sign:    Sign(sign).Title(),
		Element: orPlaceholder(p.Element),
		Mode:    orPlaceholder(p.Mode),
		Short:   orPlaceholder(p.ShortProfile),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
