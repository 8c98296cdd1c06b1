package entity

import "time"

// Profile is owned by exactly one user (unique constraint on UserID).
// Experience and Education are ordered newest-first: insertion is always at
// the front of the slice.
type Profile struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Status         string            `json:"status,omitempty"`
	GithubUsername string            `json:"github_username,omitempty"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social,omitempty"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`

	// Version backs the compare-and-swap save; a stale save is rejected
	// instead of silently losing a concurrent update.
	Version int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Denormalized owner fields, populated by read queries.
	UserName   string `json:"name,omitempty"`
	UserAvatar string `json:"avatar,omitempty"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        string     `json:"from"`
	To          string     `json:"to,omitempty"`
	Current     bool       `json:"current,omitempty"`
	Description string     `json:"description,omitempty"`
	AddedAt     *time.Time `json:"added_at,omitempty"`
}

type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         string     `json:"from"`
	To           string     `json:"to,omitempty"`
	Current      bool       `json:"current,omitempty"`
	Description  string     `json:"description,omitempty"`
	AddedAt      *time.Time `json:"added_at,omitempty"`
}
