package domain

import "time"

// Service is a medical service offered by the clinic.
type Service struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        Localized `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Description Localized `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }

type Doctor struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      Localized `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Specialty Localized `json:"specialty" gorm:"embedded;embeddedPrefix:specialty_"`
	ImageURL  string    `json:"image_url,omitempty"`
	ServiceID *int64    `json:"service_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Doctor) TableName() string { return "doctors" }

type Blog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     Localized `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Content   Localized `json:"content" gorm:"embedded;embeddedPrefix:content_"`
	ImageURL  string    `json:"image_url,omitempty"`
	AuthorID  int64     `json:"author_id" gorm:"not null;index"`
	Published bool      `json:"published" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }
