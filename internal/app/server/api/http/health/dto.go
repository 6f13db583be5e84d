package health

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status" example:"ok" doc:"Состояние сервера"`
}
