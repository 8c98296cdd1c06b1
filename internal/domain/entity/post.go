package entity

import "time"

// Post is an independent aggregate authored by one user. UserID is immutable
// after creation; Name and Avatar are snapshots of the author taken at
// creation time. Likes holds each voter at most once.
type Post struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`

	Version int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type Like struct {
	UserID string `json:"user_id"`
}

// Comments are ordered newest-first, like experience entries.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether userID already appears in Likes.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
