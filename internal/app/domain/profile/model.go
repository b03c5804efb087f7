package profile

import "time"

// Profile is the single professional-profile document owned by an account.
// Experience and education are most-recent-first ordered sequences owned
// exclusively by the profile; their entry ids are unique only within it.
type Profile struct {
	ID             string            `json:"id"`
	AccountID      string            `json:"account_id"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Status         string            `json:"status"`
	Skills         []string          `json:"skills"`
	GithubUsername string            `json:"github_username,omitempty"`
	Social         Social            `json:"social"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Social is the fixed set of optional link slots.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// ExperienceEntry is one position in the work history.
type ExperienceEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one entry in the education history.
type EducationEntry struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// View is a profile joined with the owning account's display fields for the
// public listing endpoints.
type View struct {
	Profile
	AccountName   string `json:"account_name"`
	AccountAvatar string `json:"account_avatar"`
}
