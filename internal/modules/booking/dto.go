package booking

import "clinic/internal/domain"

type CreateBookingRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	Phone     string `json:"phone" binding:"required,max=32"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
	ServiceID int64  `json:"service_id" binding:"required,gt=0"`
}

type ListQuery struct {
	Status   domain.BookingStatus `form:"status"`
	DateFrom string               `form:"from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string               `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int                  `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset   int                  `form:"offset" binding:"omitempty,min=0"`
}

type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// TransitionResult is returned by advance and cancel. Changed is false when
// the booking was already terminal and nothing was written.
type TransitionResult struct {
	Booking *domain.Booking      `json:"booking"`
	From    domain.BookingStatus `json:"from"`
	Changed bool                 `json:"changed"`
}
