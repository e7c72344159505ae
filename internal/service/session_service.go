package service

import (
	"context"
	"fmt"

	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/repository"
	"github.com/bloggify-frontend/internal/validation"
	"github.com/rs/zerolog"
)

// sessionService is the concrete implementation of SessionService
type sessionService struct {
	flags repository.SessionFlagRepository
	api   BlogAPI
	log   zerolog.Logger
}

func newSessionService(flags repository.SessionFlagRepository, api BlogAPI, log zerolog.Logger) *sessionService {
	return &sessionService{
		flags: flags,
		api:   api,
		log:   log.With().Str("service", "session").Logger(),
	}
}

// NewSessionService creates a SessionService over the given flag store
func NewSessionService(flags repository.SessionFlagRepository, api BlogAPI, log zerolog.Logger) SessionService {
	return newSessionService(flags, api, log)
}

// Load reads the persisted flags; nothing is cached between calls
func (s *sessionService) Load(ctx context.Context, sessionID string) (models.Session, error) {
	flags, err := s.flags.Get(ctx, sessionID)
	if err != nil {
		return models.Session{ID: sessionID}, fmt.Errorf("load session flags: %w", err)
	}
	return models.SessionFromFlags(sessionID, flags), nil
}

// Login exchanges credentials for a token and stores the token and role flags
func (s *sessionService) Login(ctx context.Context, sessionID string, creds models.Credentials) (models.Session, string, error) {
	if errs := validation.ValidateCredentials(creds); len(errs) > 0 {
		return models.Session{ID: sessionID}, "", errs
	}

	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return models.Session{ID: sessionID}, "", err
	}
	if result.Token == "" {
		return models.Session{ID: sessionID}, "", ErrMissingToken
	}

	flags := map[string]string{
		models.FlagToken: result.Token,
		models.FlagRole:  result.EffectiveRole(),
	}
	if err := s.flags.Set(ctx, sessionID, flags); err != nil {
		return models.Session{ID: sessionID}, "", fmt.Errorf("store session flags: %w", err)
	}

	session := models.SessionFromFlags(sessionID, flags)
	s.log.Info().
		Str("session_id", sessionID).
		Bool("admin", session.IsAdmin).
		Msg("Session logged in")

	return session, result.Message, nil
}

// Register creates an account; the session is left untouched
func (s *sessionService) Register(ctx context.Context, reg models.Registration) (string, error) {
	if errs := validation.ValidateRegistration(reg); len(errs) > 0 {
		return "", errs
	}
	return s.api.Register(ctx, reg)
}

// ForgotPassword requests a reset link for the email
func (s *sessionService) ForgotPassword(ctx context.Context, req models.PasswordResetRequest) (string, error) {
	if errs := validation.ValidatePasswordResetRequest(req); len(errs) > 0 {
		return "", errs
	}
	return s.api.ForgotPassword(ctx, req)
}

// ResetPassword sets a new password for the account named by the reset link
func (s *sessionService) ResetPassword(ctx context.Context, id, token string, reset models.PasswordReset) (string, error) {
	if errs := validation.ValidatePasswordReset(reset); len(errs) > 0 {
		return "", errs
	}
	if id == "" || token == "" {
		return "", ErrInvalidResetLink
	}

	msg, err := s.api.ResetPassword(ctx, id, token, reset)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("user_id", id).Msg("Password reset")
	return msg, nil
}

// Logout removes both flags together
func (s *sessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.flags.Delete(ctx, sessionID, models.FlagToken, models.FlagRole); err != nil {
		return fmt.Errorf("clear session flags: %w", err)
	}
	s.log.Info().Str("session_id", sessionID).Msg("Session logged out")
	return nil
}
