package domain

import "time"

// Localized holds a bilingual text value.
type Localized struct {
	AR string `json:"ar"`
	EN string `json:"en"`
}

type Offer struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	Title               Localized `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Description         Localized `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	ExpiryDate          time.Time `json:"expiry_date" gorm:"not null;index"`
	Discount            float64   `json:"discount"`
	ShowInNotifications bool      `json:"show_in_notifications" gorm:"not null;default:false"`
	ShowInHome          bool      `json:"show_in_home" gorm:"not null;default:false"`
	IsActive            bool      `json:"is_active" gorm:"not null"`
	ServiceID           *int64    `json:"service_id,omitempty" gorm:"index"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Offer) TableName() string { return "offers" }

// EvaluateOffer reports whether o is active at now. The expiry instant itself
// still counts as active.
func EvaluateOffer(o Offer, now time.Time) bool {
	return !now.After(o.ExpiryDate)
}

// ApplyExpiry recomputes IsActive at now. An expired offer also loses
// ShowInNotifications. It returns true when the stored flags must be
// rewritten, i.e. the offer is expired but was still flagged active or
// notifying.
func (o *Offer) ApplyExpiry(now time.Time) bool {
	if EvaluateOffer(*o, now) {
		o.IsActive = true
		return false
	}
	stale := o.IsActive || o.ShowInNotifications
	o.IsActive = false
	o.ShowInNotifications = false
	return stale
}
