package push

type sendInput struct {
	RawBody []byte
}

type sendOutput struct {
	Body pushResponse
}

type pushResponse struct {
	Result bool `json:"result"`
}
