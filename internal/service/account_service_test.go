package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/freelance-directory/internal/auth"
	"github.com/spec-kit/freelance-directory/internal/config"
	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/events"
	"github.com/spec-kit/freelance-directory/internal/repository/repotest"
)

type accountFixture struct {
	svc    *AccountService
	repo   *repotest.UserRepository
	mailer *recordingMailer
	clock  *testClock
}

func newAccountFixture(t *testing.T, mutate ...func(*config.Config)) *accountFixture {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	repo := newMemoryUserRepo()
	mailer := &recordingMailer{}
	clock := &testClock{now: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	dispatcher := events.NewInMemoryDispatcher(nil)
	NewNotificationService(mailer, nil, NotificationConfig{SiteName: "freelance", From: "noreply@example.com"}).RegisterHandlers(dispatcher)

	svc := NewAccountService(cfg, AccountDependencies{
		UserRepo:   repo,
		Dispatcher: dispatcher,
		Clock:      clock.Now,
	})
	return &accountFixture{svc: svc, repo: repo, mailer: mailer, clock: clock}
}

func aliceSignUp() SignUpInput {
	return SignUpInput{
		Username:   "alice",
		Email:      "a@X.com",
		Password:   "correct horse",
		Skill:      domain.SkillBackendEngineer,
		Area:       "14",
		RequestFee: "1",
	}
}

// tokenFromMail extracts the last path segment of the link in the only sent message.
func tokenFromMail(t *testing.T, f *accountFixture, prefix string) string {
	t.Helper()
	msgs := f.mailer.messages()
	require.NotEmpty(t, msgs)
	body := msgs[len(msgs)-1].Body
	idx := strings.Index(body, prefix)
	require.GreaterOrEqual(t, idx, 0, "link %q not found in %q", prefix, body)
	rest := body[idx+len(prefix):]
	return strings.Fields(rest)[0]
}

func TestSignUpCreatesPendingUserAndSendsOneEmail(t *testing.T) {
	f := newAccountFixture(t)

	user, err := f.svc.SignUp(context.Background(), aliceSignUp())
	require.NoError(t, err)

	assert.Equal(t, domain.AccountStatePending, user.State())
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	msgs := f.mailer.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"a@x.com"}, msgs[0].To)
	assert.Equal(t, "noreply@example.com", msgs[0].From)
	assert.Contains(t, msgs[0].Body, "http://localhost:8080/accounts/activate/")
}

func TestSignUpRejectsDuplicateUsername(t *testing.T) {
	f := newAccountFixture(t)
	_, err := f.svc.SignUp(context.Background(), aliceSignUp())
	require.NoError(t, err)

	_, err = f.svc.SignUp(context.Background(), aliceSignUp())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Len(t, f.mailer.messages(), 1)
}

func TestSignUpSurvivesMailFailure(t *testing.T) {
	f := newAccountFixture(t)
	f.mailer.err = errors.New("smtp down")

	user, err := f.svc.SignUp(context.Background(), aliceSignUp())
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestActivateFlow(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	user, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	token := tokenFromMail(t, f, "/accounts/activate/")

	f.clock.Advance(23 * time.Hour)
	require.NoError(t, f.svc.Activate(ctx, token))

	stored, err := f.repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStateActive, stored.State())

	err = f.svc.Activate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrActivationRejected)
	assert.ErrorIs(t, err, domain.ErrAlreadyActive)
}

func TestActivateRejectsExpiredToken(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	user, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	token := tokenFromMail(t, f, "/accounts/activate/")

	f.clock.Advance(25 * time.Hour)
	err = f.svc.Activate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrActivationRejected)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	stored, err := f.repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestActivateHonoursConfiguredTimeout(t *testing.T) {
	f := newAccountFixture(t, func(c *config.Config) { c.Auth.ActivationTimeoutSeconds = 60 })
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	token := tokenFromMail(t, f, "/accounts/activate/")

	f.clock.Advance(2 * time.Minute)
	assert.ErrorIs(t, f.svc.Activate(ctx, token), auth.ErrTokenExpired)
}

func TestActivateRejectsTamperedAndForeignTokens(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	token := tokenFromMail(t, f, "/accounts/activate/")

	tampered := token[:len(token)-2] + "xx"
	err = f.svc.Activate(ctx, tampered)
	assert.ErrorIs(t, err, domain.ErrActivationRejected)
	assert.ErrorIs(t, err, auth.ErrInvalidSignature)

	other := auth.NewSigner("test-secret", domain.TokenPurposeActivation, auth.WithClock(f.clock.Now))
	ghost, err := other.Encode("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	err = f.svc.Activate(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrActivationRejected)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResetTokenCannotActivate(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "alice"))
	resetToken := tokenFromMail(t, f, "/accounts/password/reset/")

	assert.ErrorIs(t, f.svc.Activate(ctx, resetToken), domain.ErrActivationRejected)
}

func TestLogin(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)

	_, _, _, err = f.svc.Login(ctx, "alice", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "pending accounts cannot log in")

	require.NoError(t, f.svc.Activate(ctx, tokenFromMail(t, f, "/accounts/activate/")))

	user, token, exp, err := f.svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := f.svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, _, err = f.svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, _, err = f.svc.Login(ctx, "nobody", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	user, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	require.NoError(t, f.svc.Activate(ctx, tokenFromMail(t, f, "/accounts/activate/")))

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "A@x.COM"))
	require.Len(t, f.mailer.messages(), 2)
	token := tokenFromMail(t, f, "/accounts/password/reset/")

	require.NoError(t, f.svc.ConfirmPasswordReset(ctx, token, "new password 1"))

	_, _, _, err = f.svc.Login(ctx, user.Username, "new password 1")
	require.NoError(t, err)

	err = f.svc.ConfirmPasswordReset(ctx, token, "another one")
	assert.ErrorIs(t, err, domain.ErrResetRejected, "reset tokens are single use")
}

func TestPasswordResetExpires(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "alice"))
	token := tokenFromMail(t, f, "/accounts/password/reset/")

	f.clock.Advance(73 * time.Hour)
	err = f.svc.ConfirmPasswordReset(ctx, token, "new password 1")
	assert.ErrorIs(t, err, domain.ErrResetRejected)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestPasswordResetRejectsActivationToken(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	activationToken := tokenFromMail(t, f, "/accounts/activate/")

	err = f.svc.ConfirmPasswordReset(ctx, activationToken, "new password 1")
	assert.ErrorIs(t, err, domain.ErrResetRejected)
	assert.ErrorIs(t, err, auth.ErrInvalidSignature)
}

func TestPasswordResetUnknownLoginIsSilent(t *testing.T) {
	f := newAccountFixture(t)

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ghost@example.com"))
	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ghost"))
	assert.Empty(t, f.mailer.messages())
}

func TestPasswordResetOnPendingAccount(t *testing.T) {
	ctx := context.Background()

	allowed := newAccountFixture(t)
	_, err := allowed.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	require.NoError(t, allowed.svc.RequestPasswordReset(ctx, "alice"))
	assert.Len(t, allowed.mailer.messages(), 2)

	strict := newAccountFixture(t, func(c *config.Config) { c.Auth.ResetRequiresActive = true })
	_, err = strict.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)
	require.NoError(t, strict.svc.RequestPasswordReset(ctx, "alice"))
	assert.Len(t, strict.mailer.messages(), 1)
}

func TestUpdateProfile(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	user, err := f.svc.SignUp(ctx, aliceSignUp())
	require.NoError(t, err)

	bio := "Go and Postgres"
	skill := domain.SkillWriter
	email := "alice@Example.org"
	updated, err := f.svc.UpdateProfile(ctx, user.ID, ProfileUpdate{SelfIntroduction: &bio, Skill: &skill, Email: &email})
	require.NoError(t, err)

	assert.Equal(t, bio, updated.SelfIntroduction)
	assert.Equal(t, domain.SkillWriter, updated.Skill)
	assert.Equal(t, "alice@example.org", updated.Email)
	assert.Equal(t, domain.Area("14"), updated.Area)

	_, err = f.svc.UpdateProfile(ctx, "missing", ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfilePublishesEvent(t *testing.T) {
	repo := newMemoryUserRepo()
	dispatcher := events.NewInMemoryDispatcher(nil)
	var updated []string
	dispatcher.Subscribe(events.EventProfileUpdated, func(_ context.Context, e events.Event) error {
		updated = append(updated, e.UserID)
		return nil
	})
	svc := NewAccountService(testConfig(), AccountDependencies{UserRepo: repo, Dispatcher: dispatcher})

	user, err := svc.SignUp(context.Background(), aliceSignUp())
	require.NoError(t, err)
	assert.Empty(t, updated)

	bio := "now also doing Rust"
	_, err = svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{SelfIntroduction: &bio})
	require.NoError(t, err)
	assert.Equal(t, []string{user.ID}, updated)

	_, err = svc.UpdateProfile(context.Background(), "missing", ProfileUpdate{SelfIntroduction: &bio})
	require.Error(t, err)
	assert.Len(t, updated, 1)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Alice@example.com", NormalizeEmail(" Alice@EXAMPLE.com "))
	assert.Equal(t, "not-an-email", NormalizeEmail("not-an-email"))
}
