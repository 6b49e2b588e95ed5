package credential

type CreateRequest struct {
	Title      string `json:"title" validate:"required,max=100"`
	Username   string `json:"username,omitempty" validate:"max=255"`
	Password   string `json:"password" validate:"required"`
	URL        string `json:"url,omitempty" validate:"max=500"`
	Notes      string `json:"notes,omitempty"`
	CategoryID *int   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
}

// UpdateRequest is partial: nil fields are left untouched. A CategoryID of 0
// detaches the credential from its category.
type UpdateRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Username   *string `json:"username,omitempty" validate:"omitempty,max=255"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=1"`
	URL        *string `json:"url,omitempty" validate:"omitempty,max=500"`
	Notes      *string `json:"notes,omitempty"`
	CategoryID *int    `json:"category_id,omitempty" validate:"omitempty,gte=0"`
}
