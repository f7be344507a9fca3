package domain

import "time"

type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact,omitempty"`
	College   string    `json:"college"`
	Branch    string    `json:"branch"`
	Year      string    `json:"year"`
	Skills    []string  `json:"skills"`
	ResumeURL string    `json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot freezes the profile fields an application carries.
func (u *User) Snapshot() ApplicantSnapshot {
	skills := make([]string, len(u.Skills))
	copy(skills, u.Skills)
	return ApplicantSnapshot{
		Name:      u.Name,
		Email:     u.Email,
		College:   u.College,
		Branch:    u.Branch,
		Year:      u.Year,
		Skills:    skills,
		ResumeURL: u.ResumeURL,
	}
}
