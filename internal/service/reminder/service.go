package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthmaster/healthmaster-go/internal/config"
	"github.com/healthmaster/healthmaster-go/internal/model"
	"github.com/healthmaster/healthmaster-go/internal/store"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
	"github.com/healthmaster/healthmaster-go/pkg/logger"
	"github.com/healthmaster/healthmaster-go/pkg/validator"
)

type SessionResolver interface {
	CurrentUser(ctx context.Context) (*model.UserProfile, error)
}

// Service manages reminder documents. Reminders have no update or
// delete path; a changed reminder is recreated by the caller.
type Service struct {
	sessions SessionResolver
	store    store.Store
	cfg      config.StoreConfig
	validate *validator.Validator
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
		validate: validator.New(),
		logger:   log.WithComponent("reminders"),
	}
}

func (s *Service) resolveUser(ctx context.Context) (*model.UserProfile, error) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Newf(apperror.Unauthenticated, "reminders", "reminder", "no authenticated user")
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateReminderRequest) (*model.Reminder, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.New(apperror.Validation, "reminders.create", "reminder", "invalid reminder", err)
	}

	user, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	reminder := model.Reminder{
		UserID:            user.ID,
		Title:             req.Title,
		Type:              req.Type,
		MedicationID:      req.MedicationID,
		Date:              req.Date,
		Time:              req.Time,
		NotificationSound: req.NotificationSound,
		Notes:             req.Notes,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}

	var created model.Reminder
	if err := s.store.CreateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Reminders, uuid.NewString(), reminder, &created); err != nil {
		s.logger.Error(err, "failed to create reminder", "userId", user.ID)
		return nil, err
	}
	return &created, nil
}

// List returns the caller's reminders, most recently created first.
func (s *Service) List(ctx context.Context) ([]*model.Reminder, error) {
	user, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	reminders := []*model.Reminder{}
	err = s.store.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.Collections.Reminders,
		[]store.Query{store.Equal("userId", user.ID), store.OrderDesc("createdAt")}, &reminders)
	if err != nil {
		s.logger.Error(err, "failed to list reminders", "userId", user.ID)
		return nil, err
	}
	return reminders, nil
}

// SoundFileURL resolves a notification sound in the sounds bucket to
// its view URL. Pure URL construction, no request.
func (s *Service) SoundFileURL(fileID string) string {
	return s.store.FileViewURL(s.cfg.Buckets.Sounds, fileID)
}
