package domain

import "time"

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Phone     string    `json:"phone" gorm:"size:32"`
	Email     string    `json:"email" gorm:"size:255"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"column:is_read;not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Message) TableName() string { return "messages" }
