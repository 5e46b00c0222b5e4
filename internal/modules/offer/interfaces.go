package offer

import (
	"context"

	"clinic/internal/domain"
)

type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) error
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	List(ctx context.Context) ([]domain.Offer, error)
	Update(ctx context.Context, o *domain.Offer) error
	ExpireFlags(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type OfferNotifier interface {
	NotifyNewOffer(ctx context.Context, o *domain.Offer)
}
