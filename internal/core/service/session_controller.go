package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/pkg/metrics"
)

// logoutNotifyTimeout bounds the server notification sent when the local
// timer expires; there is no caller context to inherit from.
const logoutNotifyTimeout = 5 * time.Second

// SessionListener is called after every master-mode transition, outside of
// any lock held by the controller.
type SessionListener func(ctx context.Context, active bool)

// SessionController owns the master session and its advisory expiry timer.
//
// The local timer only degrades the UI early; the server stays authoritative
// and Reconcile always overrides local state.
type SessionController struct {
	api     ports.MasterAPI
	journal ports.SessionJournal
	clock   ports.Clock
	log     zerolog.Logger

	mu         sync.Mutex
	session    domain.MasterSession
	timeoutMin int
	timer      ports.Timer
	generation uint64
	expiresAt  time.Time
	listeners  []SessionListener
}

// NewSessionController returns an anonymous controller. A nil journal
// discards audit events; a nil clock uses the wall clock.
func NewSessionController(api ports.MasterAPI, journal ports.SessionJournal, clock ports.Clock, log zerolog.Logger) *SessionController {
	if journal == nil {
		journal = nopJournal{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &SessionController{
		api:        api,
		journal:    journal,
		clock:      clock,
		log:        log,
		timeoutMin: domain.DefaultTimeoutMinutes,
	}
}

// Subscribe registers a transition listener.
func (c *SessionController) Subscribe(l SessionListener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Login exchanges a scanned master token for a master session.
func (c *SessionController) Login(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		metrics.MasterLoginsTotal.WithLabelValues("empty").Inc()
		return "", domain.ErrEmptyToken
	}
	fp := tokenFingerprint(token)

	masterID, err := c.api.MasterLogin(ctx, token)
	if err != nil {
		result := "network"
		if errors.Is(err, domain.ErrServerRejection) {
			result = "rejected"
			err = fmt.Errorf("%w: %w", domain.ErrLoginRejected, err)
		}
		metrics.MasterLoginsTotal.WithLabelValues(result).Inc()
		c.log.Warn().Err(err).Str("token_fp", fp).Msg("master login failed")
		return "", fmt.Errorf("master login: %w", err)
	}
	if masterID == "" {
		masterID = token
	}

	c.mu.Lock()
	c.session = domain.MasterSession{
		MasterID:       masterID,
		TimeoutMinutes: c.timeoutMin,
		EstablishedAt:  c.clock.Now(),
	}
	c.armLocked()
	timeout := c.timeoutMin
	c.mu.Unlock()

	metrics.MasterLoginsTotal.WithLabelValues("ok").Inc()
	metrics.MasterSessionActive.Set(1)
	c.record(domain.EventMasterLogin, masterID, "", fp)
	c.log.Info().Str("master_id", masterID).Int("timeout_min", timeout).Msg("master mode enabled")

	c.notify(ctx, true)
	return masterID, nil
}

// Logout leaves master mode. Local visibility is revoked first; the server is
// then notified on a best-effort basis, even when already anonymous.
func (c *SessionController) Logout(ctx context.Context, reason domain.LogoutReason) {
	masterID, revoked := c.revoke(0, false)
	if revoked {
		c.afterRevoke(ctx, masterID, reason)
	}
	c.notifyServer(ctx, reason)
}

// Reconcile aligns local state with the master id reported by the server.
// An empty id forces anonymous mode without notifying the server.
func (c *SessionController) Reconcile(ctx context.Context, serverMasterID string) {
	if serverMasterID == "" {
		if masterID, revoked := c.revoke(0, false); revoked {
			c.afterRevoke(ctx, masterID, domain.LogoutServer)
		}
		return
	}

	c.mu.Lock()
	entered := c.session.MasterID != serverMasterID
	if entered {
		c.session = domain.MasterSession{
			MasterID:       serverMasterID,
			TimeoutMinutes: c.timeoutMin,
			EstablishedAt:  c.clock.Now(),
		}
	}
	c.armLocked()
	c.mu.Unlock()

	if !entered {
		return
	}
	metrics.MasterSessionActive.Set(1)
	c.record(domain.EventMasterReconcile, serverMasterID, "", "")
	c.log.Info().Str("master_id", serverMasterID).Msg("master session confirmed by server")
	c.notify(ctx, true)
}

// ArmTimer sets the session timeout (clamped with domain.ClampTimeout) and
// restarts the advisory timer when a session is active. It returns the
// effective number of minutes.
func (c *SessionController) ArmTimer(minutes int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timeoutMin = domain.ClampTimeout(minutes)
	if c.session.Active() {
		c.session.TimeoutMinutes = c.timeoutMin
	}
	c.armLocked()
	return c.timeoutMin
}

// IsActive is the optimistic local view of master mode.
func (c *SessionController) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Active()
}

// Active answers from the local view, or reconciles with the server first
// when freshness is FreshnessAuthoritative. On transport failure the local
// state is left untouched and the error returned.
func (c *SessionController) Active(ctx context.Context, freshness domain.Freshness) (bool, error) {
	if freshness == domain.FreshnessAuthoritative {
		masterID, err := c.api.CurrentMaster(ctx)
		if err != nil {
			return c.IsActive(), fmt.Errorf("verify master session: %w", err)
		}
		c.Reconcile(ctx, masterID)
	}
	return c.IsActive(), nil
}

// Session returns a copy of the current session.
func (c *SessionController) Session() domain.MasterSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// MasterID returns the active master id, empty when anonymous.
func (c *SessionController) MasterID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.MasterID
}

// ExpiresAt returns the advisory expiry, zero when anonymous.
func (c *SessionController) ExpiresAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt
}

// TimeoutMinutes returns the effective timeout applied to new sessions.
func (c *SessionController) TimeoutMinutes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeoutMin
}

// armLocked cancels the pending timer and schedules a new one while a
// session is active. Callers hold c.mu.
func (c *SessionController) armLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.expiresAt = time.Time{}
	if !c.session.Active() {
		return
	}

	d := time.Duration(c.timeoutMin) * time.Minute
	gen := c.generation
	c.expiresAt = c.clock.Now().Add(d)
	c.timer = c.clock.AfterFunc(d, func() { c.expire(gen) })
}

// revoke switches to anonymous mode. With checkGen set, it only acts when
// gen is still the current timer generation, so a timer armed for an older
// session can never end a newer one.
func (c *SessionController) revoke(gen uint64, checkGen bool) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if checkGen && gen != c.generation {
		return "", false
	}
	masterID := c.session.MasterID
	c.session = domain.MasterSession{TimeoutMinutes: c.timeoutMin}
	c.armLocked()
	return masterID, masterID != ""
}

func (c *SessionController) expire(gen uint64) {
	masterID, revoked := c.revoke(gen, true)
	if !revoked {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), logoutNotifyTimeout)
	defer cancel()
	c.afterRevoke(ctx, masterID, domain.LogoutTimeout)
	c.notifyServer(ctx, domain.LogoutTimeout)
}

func (c *SessionController) afterRevoke(ctx context.Context, masterID string, reason domain.LogoutReason) {
	metrics.MasterLogoutsTotal.WithLabelValues(string(reason)).Inc()
	metrics.MasterSessionActive.Set(0)
	c.record(domain.EventMasterLogout, masterID, reason, "")
	c.log.Info().Str("master_id", masterID).Str("reason", string(reason)).Msg("master mode disabled")
	c.notify(ctx, false)
}

func (c *SessionController) notifyServer(ctx context.Context, reason domain.LogoutReason) {
	if err := c.api.MasterLogout(ctx, reason); err != nil {
		c.log.Warn().Err(err).Str("reason", string(reason)).Msg("master logout not confirmed by server")
	}
}

func (c *SessionController) notify(ctx context.Context, active bool) {
	c.mu.Lock()
	listeners := make([]SessionListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(ctx, active)
	}
}

func (c *SessionController) record(t domain.SessionEventType, masterID string, reason domain.LogoutReason, fp string) {
	c.journal.Record(domain.SessionEvent{
		ID:               uuid.NewString(),
		Type:             t,
		MasterID:         masterID,
		Reason:           reason,
		TokenFingerprint: fp,
		At:               c.clock.Now().UTC(),
	})
}

// tokenFingerprint identifies a scanned token in logs without revealing it.
func tokenFingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}
