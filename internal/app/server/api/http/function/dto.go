package function

type runInput struct {
	Name string         `path:"name" example:"hello" doc:"Имя облачной функции"`
	Body map[string]any `required:"false"`
}

type runOutput struct {
	Body functionResponse
}

type functionResponse struct {
	Result any `json:"result"`
}
