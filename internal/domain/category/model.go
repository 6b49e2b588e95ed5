package category

import "time"

type Category struct {
	ID            int       `json:"id"`
	UserID        int       `json:"-"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon,omitempty"`
	Color         string    `json:"color,omitempty"`
	PasswordCount int       `json:"password_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Request struct {
	Name  string `json:"name" validate:"required,max=100" doc:"Название категории" minLength:"1" maxLength:"100"`
	Icon  string `json:"icon,omitempty" validate:"max=50" doc:"Иконка" maxLength:"50"`
	Color string `json:"color,omitempty" validate:"max=50" doc:"Цвет" maxLength:"50"`
}
