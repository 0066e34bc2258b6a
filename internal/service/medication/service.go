package medication

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
		logger:   log.WithComponent("medications"),
	}
}

func (s *Service) resolveUser(ctx context.Context) (*model.UserProfile, error) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Newf(apperror.Unauthenticated, "medications", "medication", "no authenticated user")
	}
	return user, nil
}

// Create adds a medication course for the calling user. Start and end
// dates are normalized to ISO-8601 instants before storage.
func (s *Service) Create(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.New(apperror.Validation, "medications.create", "medication", "invalid medication", err)
	}
	start, err := model.NormalizeInstant(req.StartDate)
	if err != nil {
		return nil, apperror.New(apperror.Validation, "medications.create", "medication", "startDate must be an ISO-8601 instant or date", err)
	}
	end, err := model.NormalizeInstant(req.EndDate)
	if err != nil {
		return nil, apperror.New(apperror.Validation, "medications.create", "medication", "endDate must be an ISO-8601 instant or date", err)
	}

	user, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	med := model.Medication{
		UserID:    user.ID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Quantity:  req.Quantity,
		StartDate: start,
		EndDate:   end,
		TimeOfDay: req.TimeOfDay,
		Style:     req.Style,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var created model.Medication
	if err := s.store.CreateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Medications, uuid.NewString(), med, &created); err != nil {
		s.logger.Error(err, "failed to create medication", "userId", user.ID)
		return nil, err
	}
	return &created, nil
}

// List returns the caller's medications, most recently added first.
func (s *Service) List(ctx context.Context) ([]*model.Medication, error) {
	user, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	medications := []*model.Medication{}
	err = s.store.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.Collections.Medications,
		[]store.Query{store.Equal("userId", user.ID), store.OrderDesc("createdAt")}, &medications)
	if err != nil {
		s.logger.Error(err, "failed to list medications", "userId", user.ID)
		return nil, err
	}
	return medications, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Medication, error) {
	var med model.Medication
	if err := s.store.GetDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Medications, id, &med); err != nil {
		s.logger.Error(err, "failed to get medication", "id", id)
		return nil, err
	}
	return &med, nil
}

// Update applies a partial field set by ID.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	var updated model.Medication
	if err := s.store.UpdateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Medications, id, req, &updated); err != nil {
		s.logger.Error(err, "failed to update medication", "id", id)
		return nil, err
	}
	return &updated, nil
}

// Complete marks a medication course finished.
func (s *Service) Complete(ctx context.Context, id string) (*model.Medication, error) {
	var updated model.Medication
	partial := map[string]interface{}{"status": model.MedicationStatusCompleted}
	if err := s.store.UpdateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Medications, id, partial, &updated); err != nil {
		s.logger.Error(err, "failed to complete medication", "id", id)
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Medications, id); err != nil {
		s.logger.Error(err, "failed to delete medication", "id", id)
		return err
	}
	return nil
}
