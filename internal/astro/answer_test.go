package astro

import (
	"testing"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leoProfile(t *testing.T) *models.Profile {
	t.Helper()
	p, err := NewBuilder(WithClock(fixedClock(2026, time.October, 18))).
		Build("Asha", "1995-08-01", "09:30", "Mumbai, India")
	require.NoError(t, err)
	return p
}

func TestAnswer_Categories(t *testing.T) {
	p := leoProfile(t)

	tests := []struct {
		name     string
		question string
		category Category
		want     string
	}{
		{
			name:     "career",
			question: "Will I get a promotion?",
			category: CategoryCareer,
			want:     "For a Leo (element: Fire), steady progress and practical planning usually bring the best results. Focus on consistent effort and visible small wins.",
		},
		{
			name:     "love",
			question: "  Is my PARTNER the one?  ",
			category: CategoryLove,
			want:     "Asha, as a Leo, you value Fire-style expression. Be clear about needs and listen; steady demonstrations of care matter more than grand gestures.",
		},
		{
			name:     "health",
			question: "any fitness tips",
			category: CategoryHealth,
			want:     "Small, regular routines suit Leo — aim for balanced sleep, moderate exercise, and mindful breaks.",
		},
		{
			name:     "fallback",
			question: "tell me about my day",
			category: CategoryFallback,
			want:     "Asha, Leo energy combines Fire traits — remember your strengths ( Confident, expressive, generous. ). Try to convert them into one concrete action this week.",
		},
		{
			name:     "career before love",
			question: "will my job help my marriage",
			category: CategoryCareer,
			want:     "For a Leo (element: Fire), steady progress and practical planning usually bring the best results. Focus on consistent effort and visible small wins.",
		},
		{
			name:     "love before health",
			question: "does love improve wellness",
			category: CategoryLove,
			want:     "Asha, as a Leo, you value Fire-style expression. Be clear about needs and listen; steady demonstrations of care matter more than grand gestures.",
		},
		{
			name:     "substring match",
			question: "homework",
			category: CategoryCareer,
			want:     "For a Leo (element: Fire), steady progress and practical planning usually bring the best results. Focus on consistent effort and visible small wins.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, category := Classify(tt.question, p)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Answer(tt.question, p))
		})
	}
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		assert.Equal(t, EmptyQuestionPrompt, Answer(q, leoProfile(t)))
		assert.Equal(t, EmptyQuestionPrompt, Answer(q, nil))
	}
}

func TestAnswer_DegenerateProfile(t *testing.T) {
	t.Run("nil profile", func(t *testing.T) {
		assert.Equal(t,
			"unknown, Unknown energy combines unknown traits — remember your strengths ( unknown ). Try to convert them into one concrete action this week.",
			Answer("hello", nil))
	})

	t.Run("empty profile", func(t *testing.T) {
		assert.Equal(t,
			"For a Unknown (element: unknown), steady progress and practical planning usually bring the best results. Focus on consistent effort and visible small wins.",
			Answer("work", &models.Profile{}))
	})
}

func TestAnswer_Deterministic(t *testing.T) {
	p := leoProfile(t)
	first := Answer("How is my career looking?", p)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, Answer("How is my career looking?", p))
	}
}

func TestRules_Order(t *testing.T) {
	var order []Category
	for _, r := range rules {
		order = append(order, r.category)
		assert.NotEmpty(t, r.templates)
	}
	assert.Equal(t, []Category{CategoryCareer, CategoryLove, CategoryHealth}, order)
}
