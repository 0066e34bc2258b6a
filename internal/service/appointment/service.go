package appointment

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

// SessionResolver yields the calling user. (nil, nil) means logged out.
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
		logger:   log.WithComponent("appointments"),
	}
}

func (s *Service) resolveUser(ctx context.Context) (*model.UserProfile, error) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Newf(apperror.Unauthenticated, "appointments", "appointment", "no authenticated user")
	}
	return user, nil
}

// Create books an appointment for the calling user. The owner ID and
// the Scheduled default status are set here, never taken from the
// request; the date is normalized to a UTC instant before storage.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.New(apperror.Validation, "appointments.create", "appointment", "invalid appointment", err)
	}
	date, err := model.NormalizeInstant(req.Date)
	if err != nil {
		return nil, apperror.New(apperror.Validation, "appointments.create", "appointment", "date must be an ISO-8601 instant or date", err)
	}

	user, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	apt := model.Appointment{
		UserID:               user.ID,
		DoctorID:             req.DoctorID,
		DoctorName:           req.DoctorName,
		DoctorSpecialization: req.DoctorSpecialization,
		Date:                 date,
		Reason:               req.Reason,
		Severity:             req.Severity,
		Status:               model.AppointmentStatusScheduled,
		CreatedAt:            time.Now().UTC().Format(time.RFC3339),
	}

	var created model.Appointment
	if err := s.store.CreateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Appointments, uuid.NewString(), apt, &created); err != nil {
		s.logger.Error(err, "failed to create appointment", "userId", user.ID)
		return nil, err
	}
	return &created, nil
}

// List returns the caller's appointments ordered by date descending.
// Zero appointments is an empty slice, not an error. Appointments
// sharing an identical instant come back in whatever relative order
// the store chose; no secondary sort is applied.
func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	user, err := s.resolveUser(ctx)
	if err != nil {
		return nil, err
	}

	appointments := []*model.Appointment{}
	err = s.store.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.Collections.Appointments,
		[]store.Query{store.Equal("userId", user.ID), store.OrderDesc("date")}, &appointments)
	if err != nil {
		s.logger.Error(err, "failed to list appointments", "userId", user.ID)
		return nil, err
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Appointment, error) {
	var apt model.Appointment
	if err := s.store.GetDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Appointments, id, &apt); err != nil {
		s.logger.Error(err, "failed to get appointment", "id", id)
		return nil, err
	}
	return &apt, nil
}

// Complete marks a scheduled appointment attended.
func (s *Service) Complete(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCompleted)
}

// Cancel marks a scheduled appointment cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCancelled)
}

// transition enforces Scheduled -> {Completed, Cancelled}; terminal
// states never change again.
func (s *Service) transition(ctx context.Context, id string, next model.AppointmentStatus) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current, _ := model.ParseAppointmentStatus(string(apt.Status))
	if current == model.AppointmentStatusCompleted || current == model.AppointmentStatusCancelled {
		return nil, apperror.Newf(apperror.Validation, "appointments.update", "appointment",
			"appointment is already %s", current.Display())
	}

	var updated model.Appointment
	partial := map[string]interface{}{"status": next}
	if err := s.store.UpdateDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Appointments, id, partial, &updated); err != nil {
		s.logger.Error(err, "failed to update appointment status", "id", id, "status", next)
		return nil, err
	}
	return &updated, nil
}

// Delete removes an appointment by ID. Ownership is enforced by the
// store's access control, not re-checked here.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(ctx, s.cfg.DatabaseID, s.cfg.Collections.Appointments, id); err != nil {
		s.logger.Error(err, "failed to delete appointment", "id", id)
		return err
	}
	return nil
}
