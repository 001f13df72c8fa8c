// Package session owns the auth token and user identity lifecycle.
//
// The invariant: either the manager holds a non-empty token (authenticated)
// or token, user and their persisted mirrors are all cleared. There is no
// partial session at any observable instant.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/revumeapp/revume-cli/internal/client/api"
	"github.com/revumeapp/revume-cli/internal/client/models"
	"github.com/revumeapp/revume-cli/internal/client/prefs"
	"github.com/revumeapp/revume-cli/internal/client/probe"
	"github.com/revumeapp/revume-cli/internal/logging"
)

type Manager struct {
	mu    sync.Mutex
	token string
	user  *models.User

	client api.Client
	store  prefs.Store
	avail  *probe.State
	log    logging.Logger
}

func NewManager(client api.Client, store prefs.Store, avail *probe.State, log logging.Logger) *Manager {
	return &Manager{client: client, store: store, avail: avail, log: log}
}

// Hydrate restores a persisted session, if any. Missing or unreadable values
// degrade to the signed-out default.
func (m *Manager) Hydrate(ctx context.Context) {
	token, err := m.store.Get(ctx, prefs.KeyToken)
	if err != nil || token == "" {
		return
	}

	var user *models.User
	if raw, err := m.store.Get(ctx, prefs.KeyUser); err == nil && raw != "" {
		var u models.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			user = &u
		}
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.establish(ctx, res)
	return nil
}

func (m *Manager) Register(ctx context.Context, email, password string) error {
	res, err := m.client.Register(ctx, email, password)
	if err != nil {
		return err
	}
	m.establish(ctx, res)
	return nil
}

// establish installs the new session atomically and marks the backend ready:
// a successful auth round-trip is proof of life.
func (m *Manager) establish(ctx context.Context, res *models.AuthResult) {
	m.mu.Lock()
	m.token = res.Token
	m.user = &res.User
	m.mu.Unlock()

	if err := m.store.Set(ctx, prefs.KeyToken, res.Token); err != nil {
		m.log.Warn(ctx, "failed to persist token", "err", err)
	}
	if raw, err := json.Marshal(res.User); err == nil {
		if err := m.store.Set(ctx, prefs.KeyUser, string(raw)); err != nil {
			m.log.Warn(ctx, "failed to persist user", "err", err)
		}
	}

	m.avail.Set(probe.Ready)
}

// Logout notifies the server on a best-effort basis and always clears local
// session state, whether or not the remote call succeeded.
func (m *Manager) Logout(ctx context.Context) {
	if m.Token() != "" {
		if err := m.client.Logout(ctx); err != nil {
			m.log.Warn(ctx, "remote logout failed", "err", err)
		}
	}
	m.Invalidate(ctx)
}

// Invalidate tears the session down locally: in-memory state, persisted
// mirrors, and availability back to idle. Called on logout and on any 401.
func (m *Manager) Invalidate(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, prefs.KeyToken); err != nil {
		m.log.Warn(ctx, "failed to clear persisted token", "err", err)
	}
	if err := m.store.Delete(ctx, prefs.KeyUser); err != nil {
		m.log.Warn(ctx, "failed to clear persisted user", "err", err)
	}

	m.avail.Set(probe.Idle)
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}
