package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container накапливает мидлвари для очередной группы операций
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

func (mc *Container) Add(middleware ...func(ctx huma.Context, next func(huma.Context))) {
	mc.Middlewares = append(mc.Middlewares, middleware...)
}

// GetAllAndClear возвращает все мидлвари и очищает внутренний список
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
