package user

type BaseRequest struct {
	Email    string `json:"email" validate:"required,email,max=120" doc:"Email пользователя" format:"email" maxLength:"120"`
	Password string `json:"password" validate:"required" doc:"Мастер-пароль" minLength:"1"`
}
