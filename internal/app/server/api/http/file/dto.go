package file

type uploadInput struct {
	Name        string `path:"name" example:"avatar.png" doc:"Исходное имя файла"`
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

type uploadOutput struct {
	Location string `header:"Location"`
	Body     fileResponse
}

type fileResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type downloadInput struct {
	Name string `path:"name" doc:"Имя файла, выданное при загрузке"`
}

type downloadOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
