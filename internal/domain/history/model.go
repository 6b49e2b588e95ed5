package history

import "time"

type Action string

const (
	ActionRegister        Action = "register"
	ActionLogin           Action = "login"
	ActionLoginFailed     Action = "login_failed"
	ActionSecondFactorBad Action = "2fa_failed"
	ActionTokenRefreshed  Action = "token_refreshed"
	ActionLogout          Action = "logout"
	ActionPasswordCreated Action = "password_created"
	ActionPasswordUpdated Action = "password_updated"
	ActionPasswordDeleted Action = "password_deleted"
	ActionPasswordViewed  Action = "password_viewed"
	ActionCategoryCreated Action = "category_created"
	ActionCategoryUpdated Action = "category_updated"
	ActionCategoryDeleted Action = "category_deleted"
)

type Entry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Action    Action    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Page struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}
