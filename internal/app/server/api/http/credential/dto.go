package credential

import "windkey/internal/domain/credential"

type listInput struct {
	Search     string `query:"search" doc:"Поиск по названию, логину и URL"`
	CategoryID int    `query:"category_id" minimum:"0" doc:"Фильтр по категории"`
}

type listOutput struct {
	Body []credential.Credential
}

type idInput struct {
	ID int `path:"id" minimum:"1"`
}

type findOutput struct {
	Body credential.Credential
}

type createInput struct {
	Body credential.CreateRequest
}

type updateInput struct {
	ID   int `path:"id" minimum:"1"`
	Body credential.UpdateRequest
}

type credentialOutput struct {
	Body credential.Credential
}

type messageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}
