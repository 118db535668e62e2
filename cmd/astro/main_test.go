package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	birth = models.ReportRequest{}
	asJSON = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	out, err := execute(t, "report", "--name", "Asha", "--dob", "1995-08-01", "--tob", "09:30", "--place", "Mumbai, India")
	require.NoError(t, err)
	assert.Contains(t, out, "# Astrology Report for: Asha")
	assert.Contains(t, out, "Asha, your Sun sign is Leo — Confident, expressive, generous. (Fire element, Fixed modality).")
}

func TestReportCommand_JSON(t *testing.T) {
	out, err := execute(t, "report", "--name", "Asha", "--dob", "15 Jun 1998", "--json")
	require.NoError(t, err)

	var p models.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "gemini", p.SunSign)
	assert.Equal(t, "1998-06-15T00:00:00", p.BirthDatetime)
}

func TestReportCommand_InvalidDate(t *testing.T) {
	_, err := execute(t, "report", "--name", "Asha", "--dob", "not-a-date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid date/time format:")
}

func TestAskCommand(t *testing.T) {
	out, err := execute(t, "ask", "--name", "Asha", "--dob", "1995-08-01", "will", "my", "job", "help", "my", "marriage")
	require.NoError(t, err)
	assert.Equal(t,
		"For a Leo (element: Fire), steady progress and practical planning usually bring the best results. Focus on consistent effort and visible small wins.\n",
		out)
}

func TestAskCommand_NoQuestion(t *testing.T) {
	out, err := execute(t, "ask", "--name", "Asha", "--dob", "1995-08-01")
	require.NoError(t, err)
	assert.Equal(t, "Please type a question about your career, love life, or personality.\n", out)
}
