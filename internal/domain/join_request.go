package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "PENDING"
	JoinRequestStatusAccepted JoinRequestStatus = "ACCEPTED"
	JoinRequestStatusRejected JoinRequestStatus = "REJECTED"
)

// ApplicantSnapshot is a value copy of the applicant's profile taken at
// application time. Later profile edits never flow into it.
type ApplicantSnapshot struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	College   string   `json:"college"`
	Branch    string   `json:"branch"`
	Year      string   `json:"year"`
	Skills    []string `json:"skills"`
	ResumeURL string   `json:"resume_url"`
}

type JoinRequest struct {
	ID              int32             `json:"id"`
	ProjectID       int32             `json:"project_id"`
	ApplicantID     int32             `json:"applicant_id"`
	Sop             string            `json:"sop"`
	Snapshot        ApplicantSnapshot `json:"applicant_snapshot"`
	Status          JoinRequestStatus `json:"status"`
	DecisionAt      *time.Time        `json:"decision_at,omitempty"`
	DecisionMessage string            `json:"decision_message,omitempty"`
	Version         int32             `json:"version"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Decided reports whether the request has reached a terminal state.
func (r *JoinRequest) Decided() bool {
	return r.Status != JoinRequestStatusPending
}
