package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusOpen   ProjectStatus = "OPEN"
	ProjectStatusClosed ProjectStatus = "CLOSED"
)

type Project struct {
	ID             int32         `json:"id"`
	OwnerID        int32         `json:"owner_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Details        string        `json:"details"`
	RequiredSkills []string      `json:"required_skills"`
	TeamSize       int32         `json:"team_size"`
	MemberCount    int32         `json:"member_count"` // owner counts as the first member
	Status         ProjectStatus `json:"status"`
	IsDeleted      bool          `json:"-"`
	Version        int32         `json:"version"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ProjectPatch carries the owner-editable fields of a project. Nil means
// "leave unchanged".
type ProjectPatch struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Details        *string  `json:"details"`
	RequiredSkills []string `json:"required_skills"`
	TeamSize       *int32   `json:"team_size"`
}

// IsFull reports whether every slot on the team is taken.
func (p *Project) IsFull() bool {
	return p.MemberCount >= p.TeamSize
}
