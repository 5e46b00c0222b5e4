package domain

import "time"

type NotificationRef string

const (
	RefBooking NotificationRef = "booking"
	RefBlog    NotificationRef = "blog"
	RefMessage NotificationRef = "message"
	RefOffer   NotificationRef = "offer"
)

type NotificationType string

const (
	NotifBookingCreated NotificationType = "booking_created"
	NotifBookingStatus  NotificationType = "booking_status"
	NotifBlogPublished  NotificationType = "blog_published"
	NotifNewMessage     NotificationType = "new_message"
	NotifNewOffer       NotificationType = "new_offer"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	Type      NotificationType `json:"type" gorm:"size:32;not null"`
	Ref       NotificationRef  `json:"ref" gorm:"size:32;not null;index"`
	RefID     int64            `json:"ref_id"`
	Read      bool             `json:"read" gorm:"column:is_read;not null;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }

// notificationScopes lists the refs each staff role may see. Admin is handled
// separately because it sees every ref, including ones added later.
var notificationScopes = map[UserRole][]NotificationRef{
	RoleSupport: {RefBooking},
	RoleEditor:  {RefBlog},
	RoleAuthor:  {RefBlog},
}

// NotificationScope describes what role may see: every notification when all
// is true, otherwise only those whose ref is in refs. Unknown roles get
// neither.
func NotificationScope(role UserRole) (all bool, refs []NotificationRef) {
	if role == RoleAdmin {
		return true, nil
	}
	return false, notificationScopes[role]
}

// NotificationVisible reports whether role may see n.
func NotificationVisible(role UserRole, n Notification) bool {
	all, refs := NotificationScope(role)
	if all {
		return true
	}
	for _, ref := range refs {
		if n.Ref == ref {
			return true
		}
	}
	return false
}

// ScopeFor returns the subset of items role may see, in the original order.
// The result is never nil.
func ScopeFor(role UserRole, items []Notification) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		if NotificationVisible(role, n) {
			out = append(out, n)
		}
	}
	return out
}
