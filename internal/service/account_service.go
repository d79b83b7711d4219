package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/freelance-directory/internal/auth"
	"github.com/spec-kit/freelance-directory/internal/config"
	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/events"
	"github.com/spec-kit/freelance-directory/internal/repository"
)

// SignUpInput carries the fields collected by the registration form.
type SignUpInput struct {
	Username         string
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Skill            domain.Skill
	Area             domain.Area
	RequestFee       domain.RequestFee
	Portfolio        string
	SelfIntroduction string
	Twitter          string
	Instagram        string
}

// ProfileUpdate lists editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName        *string
	LastName         *string
	Email            *string
	Skill            *domain.Skill
	Area             *domain.Area
	RequestFee       *domain.RequestFee
	Portfolio        *string
	SelfIntroduction *string
	Twitter          *string
	Instagram        *string
	TopImage         *string
}

// AccountService coordinates sign-up, activation, login and password reset.
type AccountService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger

	activation *auth.Signer
	reset      *auth.Signer
	tokenMgr   *auth.TokenManager

	bcryptCost          int
	activationTTL       time.Duration
	resetTTL            time.Duration
	resetRequiresActive bool
	baseURL             string
}

// AccountDependencies encapsulates collaborators for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// Clock overrides time.Now for signed tokens.
	Clock func() time.Time
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		users:               deps.UserRepo,
		dispatcher:          deps.Dispatcher,
		logger:              logger,
		activation:          auth.NewSigner(cfg.Auth.SecretKey, domain.TokenPurposeActivation, auth.WithClock(deps.Clock)),
		reset:               auth.NewSigner(cfg.Auth.SecretKey, domain.TokenPurposePasswordReset, auth.WithClock(deps.Clock)),
		tokenMgr:            auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:          cfg.Auth.BcryptCost,
		activationTTL:       cfg.Auth.ActivationTimeout(),
		resetTTL:            cfg.Auth.PasswordResetTimeout(),
		resetRequiresActive: cfg.Auth.ResetRequiresActive,
		baseURL:             cfg.App.BaseURL,
	}
}

// SignUp creates a pending account and publishes the activation link.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:         username,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            NormalizeEmail(in.Email),
		PasswordHash:     hash,
		IsActive:         false,
		Skill:            in.Skill,
		Area:             in.Area,
		RequestFee:       in.RequestFee,
		Portfolio:        in.Portfolio,
		SelfIntroduction: in.SelfIntroduction,
		Twitter:          in.Twitter,
		Instagram:        in.Instagram,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.activation.Encode(user.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.LinkPayload{
			Username: user.Username,
			Email:    user.Email,
			URL:      s.baseURL + "/accounts/activate/" + token,
			ValidFor: s.activationTTL,
		},
	})

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Activate moves the account named by token from pending to active. Every
// failure wraps domain.ErrActivationRejected; a replayed token is rejected
// exactly like a forged one.
func (s *AccountService) Activate(ctx context.Context, token string) error {
	userID, err := s.activation.Decode(token, s.activationTTL)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrActivationRejected, err)
	}

	if err := s.users.Activate(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrAlreadyActive) {
			return fmt.Errorf("%w: %w", domain.ErrActivationRejected, err)
		}
		return err
	}

	s.publish(ctx, events.Event{Type: events.EventUserActivated, UserID: userID})
	s.logger.Info("user activated", zap.String("user_id", userID))
	return nil
}

// Login authenticates an active user and issues an access token.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", time.Time{}, domain.ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, domain.ErrInvalidCredentials
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout currently no-ops for stateless JWT approach.
func (s *AccountService) Logout(_ context.Context, _ string) error {
	return nil
}

// RequestPasswordReset mails a reset link to the account matching login
// (an email address or a username). Unknown logins succeed silently.
func (s *AccountService) RequestPasswordReset(ctx context.Context, login string) error {
	login = strings.TrimSpace(login)

	var (
		user *domain.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.GetByEmail(ctx, NormalizeEmail(login))
	} else {
		user, err = s.users.GetByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug("password reset for unknown login")
			return nil
		}
		return err
	}
	if s.resetRequiresActive && !user.IsActive {
		s.logger.Debug("password reset for inactive account", zap.String("user_id", user.ID))
		return nil
	}

	token, err := s.reset.Encode(resetPayload(user))
	if err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:   events.EventPasswordResetRequested,
		UserID: user.ID,
		Payload: events.LinkPayload{
			Username: user.Username,
			Email:    user.Email,
			URL:      s.baseURL + "/accounts/password/reset/" + token,
			ValidFor: s.resetTTL,
		},
	})
	return nil
}

// ConfirmPasswordReset validates the reset token and replaces the password.
// A token stops working once the password it was issued for has changed.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	payload, err := s.reset.Decode(token, s.resetTTL)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrResetRejected, err)
	}
	userID, fingerprint, ok := strings.Cut(payload, ":")
	if !ok {
		return fmt.Errorf("%w: malformed payload", domain.ErrResetRejected)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: %w", domain.ErrResetRejected, err)
		}
		return err
	}
	if auth.PasswordFingerprint(user.PasswordHash) != fingerprint {
		return fmt.Errorf("%w: token already used", domain.ErrResetRejected)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	s.logger.Info("password reset", zap.String("user_id", user.ID))
	return nil
}

// GetProfile loads a user by id.
func (s *AccountService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies the non-nil fields of upd.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&user.FirstName, upd.FirstName)
	setString(&user.LastName, upd.LastName)
	setString(&user.Portfolio, upd.Portfolio)
	setString(&user.SelfIntroduction, upd.SelfIntroduction)
	setString(&user.Twitter, upd.Twitter)
	setString(&user.Instagram, upd.Instagram)
	setString(&user.TopImage, upd.TopImage)
	if upd.Email != nil {
		user.Email = NormalizeEmail(*upd.Email)
	}
	if upd.Skill != nil {
		user.Skill = *upd.Skill
	}
	if upd.Area != nil {
		user.Area = *upd.Area
	}
	if upd.RequestFee != nil {
		user.RequestFee = *upd.RequestFee
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Type: events.EventProfileUpdated, UserID: user.ID})
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func resetPayload(user *domain.User) string {
	return user.ID + ":" + auth.PasswordFingerprint(user.PasswordHash)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
