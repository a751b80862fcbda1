package dto

type CreateCategoryRequest struct {
	Name string  `json:"name" validate:"required,min=1,max=255"`
	Slug *string `json:"slug" validate:"omitempty,max=255"`
}
