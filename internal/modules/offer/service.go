package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"clinic/internal/domain"
	"clinic/internal/pkg/metrics"
	"clinic/internal/pkg/validator"
	"clinic/internal/repository"
)

type Service struct {
	repo   OfferRepository
	notifs OfferNotifier
	now    func() time.Time
	log    zerolog.Logger
}

func NewService(repo OfferRepository, notifs OfferNotifier, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		notifs: notifs,
		now:    time.Now,
		log:    log.With().Str("module", "offer").Logger(),
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// fixExpired recomputes the active flag of every offer and persists the
// change for offers that expired while still flagged. A failed write is
// logged and the corrected values are still returned. It reports how many
// rows were rewritten.
func (s *Service) fixExpired(ctx context.Context, offers []domain.Offer) int {
	now := s.now()
	fixed := 0
	for i := range offers {
		if !offers[i].ApplyExpiry(now) {
			continue
		}
		if err := s.repo.ExpireFlags(ctx, offers[i].ID); err != nil {
			s.log.Warn().Err(err).Int64("offer_id", offers[i].ID).Msg("failed to persist offer expiry")
			continue
		}
		fixed++
		metrics.IncOfferFixup()
	}
	if fixed > 0 {
		s.log.Info().Int("count", fixed).Msg("expired offers deactivated")
	}
	return fixed
}

func (s *Service) list(ctx context.Context) ([]domain.Offer, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	s.fixExpired(ctx, offers)
	return offers, nil
}

// List returns every offer with is_active evaluated against the current time.
func (s *Service) List(ctx context.Context) ([]domain.Offer, error) {
	return s.list(ctx)
}

// Home returns the active offers flagged for the home page.
func (s *Service) Home(ctx context.Context) ([]domain.Offer, error) {
	return s.filtered(ctx, func(o domain.Offer) bool { return o.ShowInHome })
}

// NotificationOffers returns the active offers flagged for notifications.
func (s *Service) NotificationOffers(ctx context.Context) ([]domain.Offer, error) {
	return s.filtered(ctx, func(o domain.Offer) bool { return o.ShowInNotifications })
}

func (s *Service) filtered(ctx context.Context, keep func(domain.Offer) bool) ([]domain.Offer, error) {
	offers, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.IsActive && keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Offer, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	one := []domain.Offer{*o}
	s.fixExpired(ctx, one)
	return &one[0], nil
}

// Sweep runs the expiry fix-up over all offers and returns how many were
// rewritten.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list offers: %w", err)
	}
	return s.fixExpired(ctx, offers), nil
}

func (s *Service) Create(ctx context.Context, req OfferRequest) (*domain.Offer, error) {
	if fields := validateRequest(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	o := s.apply(&domain.Offer{}, req)
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	if o.IsActive && o.ShowInNotifications {
		s.notifs.NotifyNewOffer(ctx, o)
	}
	return o, nil
}

func (s *Service) Update(ctx context.Context, id int64, req OfferRequest) (*domain.Offer, error) {
	if fields := validateRequest(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}

	o = s.apply(o, req)
	if err := s.repo.Update(ctx, o); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update offer: %w", err)
	}
	return o, nil
}

func validateRequest(req OfferRequest) map[string]string {
	fields := validator.Validate(req)
	if req.ExpiryDate.IsZero() {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["ExpiryDate"] = "required"
	}
	return fields
}

// apply copies req onto o and derives the active flag. An offer saved with
// a past expiry is stored inactive and not notifying.
func (s *Service) apply(o *domain.Offer, req OfferRequest) *domain.Offer {
	o.Title = req.Title.toDomain()
	o.Description = req.Description
	o.ExpiryDate = req.ExpiryDate.Time
	o.Discount = req.Discount
	o.ShowInNotifications = req.ShowInNotifications
	o.ShowInHome = req.ShowInHome
	o.ServiceID = req.ServiceID
	o.IsActive = true
	o.ApplyExpiry(s.now())
	return o
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}
