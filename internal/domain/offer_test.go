package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateOffer(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	o := Offer{ExpiryDate: expiry}

	assert.True(t, EvaluateOffer(o, expiry.Add(-time.Hour)))
	assert.True(t, EvaluateOffer(o, expiry))
	assert.False(t, EvaluateOffer(o, expiry.Add(time.Second)))
}

func TestEvaluateOffer_PastExpiryIgnoresStoredFlags(t *testing.T) {
	o := Offer{
		ExpiryDate:          time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:            true,
		ShowInNotifications: true,
	}

	assert.False(t, EvaluateOffer(o, time.Now()))
}

func TestOffer_ApplyExpiry(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	t.Run("expired and notifying", func(t *testing.T) {
		o := Offer{
			ExpiryDate:          time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:            true,
			ShowInNotifications: true,
		}
		assert.True(t, o.ApplyExpiry(now))
		assert.False(t, o.IsActive)
		assert.False(t, o.ShowInNotifications)
	})

	t.Run("expired and already fixed", func(t *testing.T) {
		o := Offer{ExpiryDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
		assert.False(t, o.ApplyExpiry(now))
		assert.False(t, o.IsActive)
	})

	t.Run("still running", func(t *testing.T) {
		o := Offer{ExpiryDate: now.Add(24 * time.Hour), ShowInNotifications: true}
		assert.False(t, o.ApplyExpiry(now))
		assert.True(t, o.IsActive)
		assert.True(t, o.ShowInNotifications)
	})
}
