package blog

import (
	"context"
	"errors"
	"fmt"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

type Service struct {
	repo   BlogRepository
	notifs BlogNotifier
}

func NewService(repo BlogRepository, notifs BlogNotifier) *Service {
	return &Service{repo: repo, notifs: notifs}
}

// List returns published posts only, unless the caller is staff.
func (s *Service) List(ctx context.Context, role domain.UserRole, p repository.Page) ([]domain.Blog, int64, error) {
	items, total, err := s.repo.List(ctx, !role.IsStaff(), p)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	if items == nil {
		items = []domain.Blog{}
	}
	return items, total, nil
}

// Get hides drafts from non-staff callers.
func (s *Service) Get(ctx context.Context, role domain.UserRole, id int64) (*domain.Blog, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Published && !role.IsStaff() {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, authorID int64, req BlogRequest) (*domain.Blog, error) {
	b := &domain.Blog{
		Title:     domain.Localized{AR: req.Title.AR, EN: req.Title.EN},
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		AuthorID:  authorID,
		Published: req.Published,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	if b.Published {
		s.notifs.NotifyBlogPublished(ctx, b)
	}
	return b, nil
}

// Update edits a post. Authors may only edit their own posts; admins and
// editors may edit any. Publishing a draft emits a notification.
func (s *Service) Update(ctx context.Context, userID int64, role domain.UserRole, id int64, req BlogRequest) (*domain.Blog, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAuthor && b.AuthorID != userID {
		return nil, ErrForbidden
	}

	wasPublished := b.Published
	b.Title = domain.Localized{AR: req.Title.AR, EN: req.Title.EN}
	b.Content = req.Content
	b.ImageURL = req.ImageURL
	b.Published = req.Published

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if b.Published && !wasPublished {
		s.notifs.NotifyBlogPublished(ctx, b)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}
