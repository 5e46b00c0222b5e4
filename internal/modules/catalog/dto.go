package catalog

import "clinic/internal/domain"

type LocalizedInput struct {
	AR string `json:"ar" binding:"required,max=255"`
	EN string `json:"en" binding:"required,max=255"`
}

func (l LocalizedInput) toDomain() domain.Localized {
	return domain.Localized{AR: l.AR, EN: l.EN}
}

type ServiceRequest struct {
	Name        LocalizedInput   `json:"name"`
	Description domain.Localized `json:"description"`
	Price       float64          `json:"price" binding:"gte=0"`
	ImageURL    string           `json:"image_url" binding:"omitempty,max=1024"`
}

type DoctorRequest struct {
	Name      LocalizedInput   `json:"name"`
	Specialty domain.Localized `json:"specialty"`
	ImageURL  string           `json:"image_url" binding:"omitempty,max=1024"`
	ServiceID *int64           `json:"service_id" binding:"omitempty,gt=0"`
}
