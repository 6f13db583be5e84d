package object

type listInput struct {
	ClassName string `path:"className" example:"GameScore" doc:"Имя класса"`
	Where     string `query:"where" doc:"Условие в JSON: {\"score\":{\"$gte\":10}}"`
	Order     string `query:"order" example:"-score,name" doc:"Поля сортировки через запятую, - для обратного порядка"`
	Limit     int    `query:"limit" default:"100" doc:"Размер страницы"`
	Skip      int    `query:"skip" doc:"Сколько объектов пропустить"`
	Count     int    `query:"count" doc:"1 - вернуть общее число совпадений"`
	Keys      string `query:"keys" example:"score,name" doc:"Поля, которые вернуть"`
}

type listOutput struct {
	Body objectListResponse
}

type objectListResponse struct {
	Results []map[string]any `json:"results"`
	Count   *int             `json:"count,omitempty"`
}

type objectInput struct {
	ClassName string `path:"className" example:"GameScore" doc:"Имя класса"`
	ObjectID  string `path:"objectId" example:"Ed1nuqPvcm" doc:"Идентификатор объекта"`
}

type getOutput struct {
	Body map[string]any
}

type createInput struct {
	ClassName string `path:"className" example:"GameScore" doc:"Имя класса"`
	Body      map[string]any
}

type createOutput struct {
	Location string `header:"Location"`
	Body     objectCreateResponse
}

type objectCreateResponse struct {
	ObjectID  string `json:"objectId"`
	CreatedAt string `json:"createdAt"`
}

type updateInput struct {
	ClassName string `path:"className" example:"GameScore" doc:"Имя класса"`
	ObjectID  string `path:"objectId" example:"Ed1nuqPvcm" doc:"Идентификатор объекта"`
	Body      map[string]any
}

type updateOutput struct {
	Body objectUpdateResponse
}

type objectUpdateResponse struct {
	UpdatedAt string `json:"updatedAt"`
}

type deleteOutput struct {
	Body struct{}
}
