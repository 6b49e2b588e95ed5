package health

type Output struct {
	Body Response
}

type Response struct {
	Status string            `json:"status" example:"OK" doc:"OK или DEGRADED"`
	Checks map[string]string `json:"checks,omitempty" doc:"Состояние зависимостей"`
}
