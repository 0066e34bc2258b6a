package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthmaster/healthmaster-go/internal/config"
	"github.com/healthmaster/healthmaster-go/internal/model"
	"github.com/healthmaster/healthmaster-go/internal/store"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
	"github.com/healthmaster/healthmaster-go/pkg/logger"
)

const defaultAvatar = "default_avatar.png"

type SessionResolver interface {
	CurrentUser(ctx context.Context) (*model.UserProfile, error)
}

// Service manages the extended health-profile document. Profiles are
// never hard-deleted by the client.
type Service struct {
	sessions SessionResolver
	store    store.Store
	cfg      config.StoreConfig
	logger   *logger.Logger
}

func NewService(sessions SessionResolver, st store.Store, cfg config.StoreConfig, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		sessions: sessions,
		store:    st,
		cfg:      cfg,
		logger:   log.WithComponent("profile"),
	}
}

// Create provisions the calling user's health profile with identity
// fields copied from the signup profile and every health field empty
// until the user fills it in.
func (s *Service) Create(ctx context.Context) (*model.HealthProfile, error) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Newf(apperror.Unauthenticated, "profile.create", "user_profile", "no authenticated user")
	}

	hp := model.HealthProfile{
		UserID:    user.ID,
		Avatar:    defaultAvatar,
		Name:      user.Username,
		Email:     user.Email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var created model.HealthProfile
	if err := s.store.CreateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.UserProfiles, uuid.NewString(), hp, &created); err != nil {
		s.logger.Error(err, "failed to create health profile", "userId", user.ID)
		return nil, err
	}
	return &created, nil
}

func (s *Service) Fetch(ctx context.Context, id string) (*model.HealthProfile, error) {
	var hp model.HealthProfile
	if err := s.store.GetDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.UserProfiles, id, &hp); err != nil {
		s.logger.Error(err, "failed to fetch health profile", "id", id)
		return nil, err
	}
	return &hp, nil
}

// Update applies a partial field set by profile document ID.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateHealthProfileRequest) (*model.HealthProfile, error) {
	var updated model.HealthProfile
	if err := s.store.UpdateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.UserProfiles, id, req, &updated); err != nil {
		s.logger.Error(err, "failed to update health profile", "id", id)
		return nil, err
	}
	return &updated, nil
}
