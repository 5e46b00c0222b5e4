package offer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"clinic/internal/domain"
)

const dateLayout = "2006-01-02"

// Date accepts either a calendar date (YYYY-MM-DD, read as midnight UTC) or
// an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q is neither YYYY-MM-DD nor RFC 3339", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

type LocalizedInput struct {
	AR string `json:"ar" validate:"required,max=255"`
	EN string `json:"en" validate:"required,max=255"`
}

func (l LocalizedInput) toDomain() domain.Localized {
	return domain.Localized{AR: l.AR, EN: l.EN}
}

type OfferRequest struct {
	Title               LocalizedInput   `json:"title"`
	Description         domain.Localized `json:"description"`
	ExpiryDate          Date             `json:"expiry_date"`
	Discount            float64          `json:"discount" validate:"gte=0,lte=100"`
	ShowInNotifications bool             `json:"show_in_notifications"`
	ShowInHome          bool             `json:"show_in_home"`
	ServiceID           *int64           `json:"service_id" validate:"omitempty,gt=0"`
}
