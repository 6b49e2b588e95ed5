package credential

import "time"

// Credential is a stored login. Password is only populated when decrypted.
type Credential struct {
	ID                int       `json:"id"`
	UserID            int       `json:"-"`
	Title             string    `json:"title"`
	Username          string    `json:"username,omitempty"`
	Password          string    `json:"password,omitempty"`
	EncryptedPassword string    `json:"-"`
	URL               string    `json:"url,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CategoryID        *int      `json:"category_id,omitempty"`
	CategoryName      string    `json:"category_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListFilter narrows List results. Zero values mean no filter.
type ListFilter struct {
	Search     string
	CategoryID int
}
