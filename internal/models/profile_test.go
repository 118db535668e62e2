package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ReportRequest
	}{
		{"name omitted", `{"dob":"1995-08-01"}`, ReportRequest{Name: DefaultName, DOB: "1995-08-01"}},
		{"name empty", `{"name":"","dob":"1995-08-01"}`, ReportRequest{DOB: "1995-08-01"}},
		{"all fields", `{"name":"Asha","dob":"1995-08-01","tob":"09:30","place":"Mumbai"}`,
			ReportRequest{Name: "Asha", DOB: "1995-08-01", TOB: "09:30", Place: "Mumbai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ReportRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportRequest_UnmarshalJSON_Invalid(t *testing.T) {
	var got ReportRequest
	assert.Error(t, json.Unmarshal([]byte(`{"name":42}`), &got))
}
