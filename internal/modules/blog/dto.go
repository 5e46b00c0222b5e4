package blog

import "clinic/internal/domain"

type LocalizedInput struct {
	AR string `json:"ar" binding:"required,max=255"`
	EN string `json:"en" binding:"required,max=255"`
}

type BlogRequest struct {
	Title     LocalizedInput   `json:"title"`
	Content   domain.Localized `json:"content"`
	ImageURL  string           `json:"image_url" binding:"omitempty,max=1024"`
	Published bool             `json:"published"`
}
