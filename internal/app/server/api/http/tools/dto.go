package tools

import (
	"windkey/internal/domain/breach"
	"windkey/internal/domain/passgen"
)

type generateInput struct {
	Length    int  `query:"length" default:"16" doc:"Длина пароля (4..128)"`
	Uppercase bool `query:"uppercase" default:"true"`
	Lowercase bool `query:"lowercase" default:"true"`
	Numbers   bool `query:"numbers" default:"true"`
	Special   bool `query:"special" default:"true"`
}

type generateOutput struct {
	Body struct {
		Password string                 `json:"password"`
		Length   int                    `json:"length"`
		Strength passgen.StrengthResult `json:"strength"`
	}
}

type passwordInput struct {
	Body struct {
		Password string `json:"password" maxLength:"1024"`
	}
}

type strengthOutput struct {
	Body passgen.StrengthResult
}

type breachOutput struct {
	Body breach.Result
}
