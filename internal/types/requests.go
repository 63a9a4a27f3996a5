package types

import (
	"github.com/go-playground/validator/v10"
)

// RankRequest is the request body for POST /rank and POST /rank/stream.
//
// ResumeIDs empty means "rank every resume in the store". A non-empty list
// that resolves to zero candidates is answered with an empty ranked list, not
// an error; the caller decides whether that is user-facing.
type RankRequest struct {
	JobDescription string   `json:"job_description" validate:"required,min=1"`
	ResumeIDs      []string `json:"resume_ids,omitempty"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RankResponse is the response body for POST /rank and the payload of the
// final SSE event on POST /rank/stream.
type RankResponse struct {
	Ranked     []Candidate `json:"ranked"`
	JDAnalysis JobAnalysis `json:"jd_analysis"`
}

// CreateResumeRequest is the request body for POST /resumes. The raw text is
// produced upstream by the PDF extraction service, which is outside this
// engine's boundary.
type CreateResumeRequest struct {
	Filename string `json:"filename" validate:"required,min=1"`
	RawText  string `json:"raw_text"`
}

// Validate validates the CreateResumeRequest using the validator.
func (r *CreateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
