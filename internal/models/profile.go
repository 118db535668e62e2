package models

import "encoding/json"

// Profile is the astrology report returned to callers and cached per session.
type Profile struct {
	Name          string `json:"name"`
	BirthDatetime string `json:"birth_datetime"`
	Place         string `json:"place"`
	SunSign       string `json:"sun_sign"`
	Element       string `json:"element"`
	Mode          string `json:"mode"`
	Age           *int   `json:"age"`
	ShortProfile  string `json:"short_profile"`
	FullText      string `json:"full_text"`
}

// DefaultName is used when a report request leaves out the name field.
const DefaultName = "Unknown"

// ReportRequest is the birth data accepted by the report endpoints.
type ReportRequest struct {
	Name  string `json:"name"`
	DOB   string `json:"dob"`
	TOB   string `json:"tob,omitempty"`
	Place string `json:"place,omitempty"`
}

// UnmarshalJSON fills in DefaultName when "name" is absent. A name that is
// present but empty stays empty and is rejected later.
func (r *ReportRequest) UnmarshalJSON(b []byte) error {
	type plain ReportRequest
	req := plain{Name: DefaultName}
	if err := json.Unmarshal(b, &req); err != nil {
		return err
	}
	*r = ReportRequest(req)
	return nil
}

type QuestionRequest struct {
	Question string `json:"question"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}
