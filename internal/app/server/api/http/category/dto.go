package category

import "windkey/internal/domain/category"

type listOutput struct {
	Body []category.Category
}

type createInput struct {
	Body category.Request
}

type updateInput struct {
	ID   int `path:"id" minimum:"1"`
	Body category.Request
}

type deleteInput struct {
	ID int `path:"id" minimum:"1"`
}

type categoryOutput struct {
	Body category.Category
}

type messageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}
