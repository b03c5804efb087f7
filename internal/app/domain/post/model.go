package post

import "time"

// Post is a user-authored text item. Author name and avatar are captured at
// creation time; later account changes do not retroactively update them.
type Post struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Like marks one account's approval; at most one per (post, account).
type Like struct {
	AccountID string `json:"account_id"`
}

// Comment is owned exclusively by its parent post. Author fields are
// denormalized at comment time like the post's own.
type Comment struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
