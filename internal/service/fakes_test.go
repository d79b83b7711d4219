package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/freelance-directory/internal/config"
	"github.com/spec-kit/freelance-directory/internal/mail"
	"github.com/spec-kit/freelance-directory/internal/repository/repotest"
)

func newMemoryUserRepo() *repotest.UserRepository {
	return repotest.NewUserRepository()
}

// recordingMailer captures sent messages.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message{}, m.sent...)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{Name: "freelance", BaseURL: "http://localhost:8080"},
		Auth: config.AuthConfig{
			SecretKey:                   "test-secret",
			AccessTokenTTLMinutes:       60,
			BcryptCost:                  4,
			ActivationTimeoutSeconds:    60 * 60 * 24,
			PasswordResetTimeoutSeconds: 60 * 60 * 24 * 3,
		},
		Directory: config.DirectoryConfig{PageSize: 8, MostLikedLimit: 6},
	}
}
