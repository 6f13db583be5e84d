package schema

import "parsedash/internal/domain/schema"

type listOutput struct {
	Body schema.ListResponse
}

type classInput struct {
	ClassName string `path:"className" example:"GameScore" doc:"Имя класса"`
}

type schemaOutput struct {
	Body *schema.Schema
}

type createInput struct {
	ClassName string `path:"className" example:"GameScore" doc:"Имя класса"`
	Body      classCreateRequest
}

type classCreateRequest struct {
	ClassName             string                  `json:"className,omitempty" doc:"Должно совпадать с именем в пути"`
	Fields                map[string]schema.Field `json:"fields,omitempty"`
	ClassLevelPermissions map[string]any          `json:"classLevelPermissions,omitempty"`
	Indexes               map[string]any          `json:"indexes,omitempty"`
}

type emptyOutput struct {
	Body struct{}
}
