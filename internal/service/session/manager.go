package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/healthmaster/healthmaster-go/internal/config"
	"github.com/healthmaster/healthmaster-go/internal/model"
	"github.com/healthmaster/healthmaster-go/internal/store"
	"github.com/healthmaster/healthmaster-go/pkg/apperror"
	"github.com/healthmaster/healthmaster-go/pkg/logger"
)

// Sentinel errors callers can match with errors.Is. Each carries the
// kind the store boundary maps onto.
var (
	ErrAccountExists      = apperror.Newf(apperror.AccountExists, "session", "account", "account already exists")
	ErrInvalidCredentials = apperror.Newf(apperror.InvalidCredentials, "session", "session", "invalid credentials")
	ErrRateLimited        = apperror.Newf(apperror.RateLimited, "session", "session", "too many attempts")
	ErrConflictingSession = apperror.Newf(apperror.ConflictingSession, "session", "session", "a session is already active")
)

// Manager owns the account lifecycle and answers "who is calling" for
// every resource operation. It holds no state of its own beyond the
// injected store client's session.
type Manager struct {
	store  store.Store
	cfg    config.StoreConfig
	logger *logger.Logger
}

func NewManager(st store.Store, cfg config.StoreConfig, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store:  st,
		cfg:    cfg,
		logger: log.WithComponent("session"),
	}
}

// CreateAccount registers an account, signs it in, and writes its
// profile document. The profile references the account by ID and is
// the record every resource operation resolves ownership against.
// The caller ends up signed in.
func (m *Manager) CreateAccount(ctx context.Context, email, password, username string) (*model.UserProfile, error) {
	account, err := m.store.CreateAccount(ctx, uuid.NewString(), email, password, username)
	if err != nil {
		m.logger.Error(err, "create account failed", "email", email)
		return nil, err
	}

	// Writing the profile document needs an authenticated session.
	if _, err := m.SignIn(ctx, email, password); err != nil {
		return nil, err
	}

	profile := model.UserProfile{
		AccountID: account.ID,
		Email:     email,
		Username:  username,
		Avatar:    m.store.InitialsAvatarURL(username),
	}
	var created model.UserProfile
	if err := m.store.CreateDocument(ctx, m.cfg.DatabaseID, m.cfg.Collections.Users, uuid.NewString(), profile, &created); err != nil {
		// The account exists but its profile does not; surfaced so the
		// caller can prompt a retry rather than report success.
		m.logger.Error(err, "create profile document failed", "accountId", account.ID)
		return nil, err
	}

	m.logger.Info("account created", "accountId", account.ID)
	return &created, nil
}

// SignIn establishes a fresh session. Any existing session is torn
// down first, best-effort: a failed pre-sign-out is non-fatal and only
// logged, since "no active session" is the common case. If the store
// still reports an active-session conflict afterwards, the caller gets
// ErrConflictingSession and decides whether to force a sign-out; the
// conflict is never resolved silently here.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*store.Session, error) {
	if err := m.SignOut(ctx); err != nil {
		m.logger.Debug("pre-sign-in sign-out failed", "error", err.Error())
	}

	session, err := m.store.CreateSession(ctx, email, password)
	if err != nil {
		// Whatever happens past this point, the prior session is gone;
		// the typed error tells the caller to re-prompt, not retry
		// blindly.
		m.logger.Error(err, "sign in failed", "email", email)
		return nil, err
	}

	m.logger.Info("signed in", "accountId", session.UserID)
	return session, nil
}

// SignOut deletes the current session. A missing session is a silent
// success: signing out twice, or before ever signing in, never fails.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.store.DeleteSession(ctx, "current")
	if err == nil || apperror.IsKind(err, apperror.Unauthenticated) {
		return nil
	}
	m.logger.Error(err, "sign out failed")
	return err
}

// Account returns the raw store account for the active session, or
// (nil, nil) when there is none.
func (m *Manager) Account(ctx context.Context) (*store.Account, error) {
	account, err := m.store.GetAccount(ctx)
	if err != nil {
		if apperror.IsKind(err, apperror.Unauthenticated) {
			return nil, nil
		}
		m.logger.Error(err, "get account failed")
		return nil, err
	}
	return account, nil
}

// CurrentUser resolves the profile document of the authenticated
// account. No session and no matching profile are both the normal
// logged-out answer (nil, nil), never an error.
func (m *Manager) CurrentUser(ctx context.Context) (*model.UserProfile, error) {
	account, err := m.Account(ctx)
	if err != nil || account == nil {
		return nil, err
	}

	var profiles []model.UserProfile
	err = m.store.ListDocuments(ctx, m.cfg.DatabaseID, m.cfg.Collections.Users,
		[]store.Query{store.Equal("accountId", account.ID), store.Limit(1)}, &profiles)
	if err != nil {
		m.logger.Error(err, "profile lookup failed", "accountId", account.ID)
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}
