package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"clinic/internal/config"
	"clinic/internal/database"
	"clinic/internal/domain"
	"clinic/internal/modules/auth"
	"clinic/internal/pkg/logger"
	"clinic/internal/repository"
)

const seedPassword = "clinic123"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(cfg.Log, cfg.AppEnv)
	if cfg.IsProduction() {
		log.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()

	// ================== USERS ==================
	users := repository.NewUserRepository(db)
	staff := []struct {
		username string
		role     domain.UserRole
	}{
		{"admin", domain.RoleAdmin},
		{"support", domain.RoleSupport},
		{"editor", domain.RoleEditor},
		{"author", domain.RoleAuthor},
	}

	var authorID int64
	for _, s := range staff {
		hash, err := auth.HashPassword(seedPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		u := &domain.User{
			Username:     s.username,
			Email:        s.username + "@clinic.local",
			PasswordHash: hash,
			Role:         s.role,
			IsActive:     true,
		}
		if err := users.Create(ctx, u); err != nil {
			if !errors.Is(err, repository.ErrConflict) {
				log.Fatal().Err(err).Str("username", s.username).Msg("create user")
			}
			existing, err := users.GetByLogin(ctx, s.username)
			if err != nil {
				log.Fatal().Err(err).Msg("load existing user")
			}
			u = existing
			log.Info().Str("username", s.username).Msg("user exists, skipped")
		}
		if s.role == domain.RoleAuthor {
			authorID = u.ID
		}
	}

	// ================== CATALOG ==================
	services := repository.NewServiceRepository(db)
	doctors := repository.NewDoctorRepository(db)

	dental := &domain.Service{
		Name:        domain.Localized{AR: "طب الأسنان", EN: "Dentistry"},
		Description: domain.Localized{AR: "فحص وتنظيف الأسنان", EN: "Check-ups and cleaning"},
		Price:       250,
	}
	derma := &domain.Service{
		Name:        domain.Localized{AR: "الجلدية", EN: "Dermatology"},
		Description: domain.Localized{AR: "علاج البشرة", EN: "Skin treatment"},
		Price:       300,
	}
	for _, s := range []*domain.Service{dental, derma} {
		if err := services.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Msg("create service")
		}
	}

	for _, d := range []*domain.Doctor{
		{Name: domain.Localized{AR: "د. سارة", EN: "Dr. Sara"}, Specialty: domain.Localized{AR: "أسنان", EN: "Dentist"}, ServiceID: &dental.ID},
		{Name: domain.Localized{AR: "د. خالد", EN: "Dr. Khaled"}, Specialty: domain.Localized{AR: "جلدية", EN: "Dermatologist"}, ServiceID: &derma.ID},
	} {
		if err := doctors.Create(ctx, d); err != nil {
			log.Fatal().Err(err).Msg("create doctor")
		}
	}

	// ================== OFFERS ==================
	offers := repository.NewOfferRepository(db)
	now := time.Now().UTC()
	for _, o := range []*domain.Offer{
		{
			Title:               domain.Localized{AR: "خصم الشتاء", EN: "Winter discount"},
			Description:         domain.Localized{AR: "خصم على التنظيف", EN: "Cleaning discount"},
			ExpiryDate:          now.AddDate(0, 1, 0),
			Discount:            20,
			ShowInHome:          true,
			ShowInNotifications: true,
			IsActive:            true,
			ServiceID:           &dental.ID,
		},
		{
			// already lapsed, corrected on first read
			Title:               domain.Localized{AR: "عرض منتهي", EN: "Expired offer"},
			ExpiryDate:          now.AddDate(0, 0, -7),
			Discount:            10,
			ShowInNotifications: true,
			IsActive:            true,
		},
	} {
		if err := offers.Create(ctx, o); err != nil {
			log.Fatal().Err(err).Msg("create offer")
		}
	}

	// ================== BLOG ==================
	if authorID != 0 {
		blogs := repository.NewBlogRepository(db)
		if err := blogs.Create(ctx, &domain.Blog{
			Title:     domain.Localized{AR: "العناية بالأسنان", EN: "Caring for your teeth"},
			Content:   domain.Localized{AR: "نصائح يومية", EN: "Daily tips"},
			AuthorID:  authorID,
			Published: true,
		}); err != nil {
			log.Fatal().Err(err).Msg("create blog")
		}
	}

	log.Info().Str("password", seedPassword).Msg("seed completed")
}
