package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/pkg/metrics"
)

// PermissionGate derives operator capabilities and control mutability from
// the master session and the server-held settings. Server values are the
// source of truth; the gate only caches the last successful read.
type PermissionGate struct {
	api     ports.SettingsAPI
	session *SessionController
	log     zerolog.Logger

	mu       sync.Mutex
	settings domain.Settings
	loaded   bool
	mutable  bool
	consumer func(domain.PermissionSnapshot)
	onChange func(ctx context.Context) error
}

// NewPermissionGate subscribes the gate to session transitions.
func NewPermissionGate(api ports.SettingsAPI, session *SessionController, log zerolog.Logger) *PermissionGate {
	g := &PermissionGate{
		api:      api,
		session:  session,
		log:      log,
		settings: domain.Settings{TimeoutMinutes: domain.DefaultTimeoutMinutes},
	}
	session.Subscribe(g.OnSessionChange)
	return g
}

// RegisterConsumer sets the single downstream snapshot consumer. A later
// registration replaces the earlier one.
func (g *PermissionGate) RegisterConsumer(fn func(domain.PermissionSnapshot)) {
	g.mu.Lock()
	g.consumer = fn
	g.mu.Unlock()
}

// OnTransition sets the hook run after every session transition, on
// activation and on deactivation alike.
func (g *PermissionGate) OnTransition(fn func(ctx context.Context) error) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// Load fetches the settings and reconciles the session with the server.
// On failure the last-known-good state is kept.
func (g *PermissionGate) Load(ctx context.Context) error {
	state, err := g.api.GetSettings(ctx)
	if err != nil {
		metrics.SettingsSyncTotal.WithLabelValues("load", "error").Inc()
		g.log.Warn().Err(err).Msg("settings load failed, keeping last known state")
		return fmt.Errorf("load settings: %w", err)
	}

	g.apply(ctx, state)
	metrics.SettingsSyncTotal.WithLabelValues("load", "ok").Inc()
	return nil
}

// Save validates and persists settings. Invalid or unauthorised changes never
// reach the network; a failed write is reverted by re-reading the server.
func (g *PermissionGate) Save(ctx context.Context, s domain.Settings) error {
	if !domain.TimeoutInRange(s.TimeoutMinutes) {
		metrics.SettingsSyncTotal.WithLabelValues("save", "invalid").Inc()
		return domain.ErrTimeoutRange
	}
	if err := g.RequireMaster(); err != nil {
		metrics.SettingsSyncTotal.WithLabelValues("save", "denied").Inc()
		return err
	}

	state, err := g.api.SaveSettings(ctx, s)
	if err != nil {
		metrics.SettingsSyncTotal.WithLabelValues("save", "error").Inc()
		g.log.Warn().Err(err).Msg("settings save failed, re-reading server state")
		// Load logs its own failure; the save error is what the caller sees.
		_ = g.Load(ctx)
		return fmt.Errorf("save settings: %w", err)
	}

	g.apply(ctx, state)
	metrics.SettingsSyncTotal.WithLabelValues("save", "ok").Inc()
	g.log.Info().Str("master_id", g.session.MasterID()).Msg("settings saved")
	return nil
}

// OnSessionChange recomputes mutability and the snapshot after a session
// transition, then runs the transition hook.
func (g *PermissionGate) OnSessionChange(ctx context.Context, active bool) {
	g.SetMutable(active)
	g.publish()

	g.mu.Lock()
	hook := g.onChange
	g.mu.Unlock()
	if hook == nil {
		return
	}
	if err := hook(ctx); err != nil {
		g.log.Warn().Err(err).Bool("master_active", active).Msg("reload after session transition failed")
	}
}

// CurrentSnapshot derives the capability snapshot from the live session
// state; every flag is false while master mode is inactive.
func (g *PermissionGate) CurrentSnapshot() domain.PermissionSnapshot {
	active := g.session.IsActive()
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.SnapshotFrom(g.settings, active)
}

// SetMutable enables or disables every setting control.
func (g *PermissionGate) SetMutable(enabled bool) {
	g.mu.Lock()
	g.mutable = enabled
	g.mu.Unlock()
}

// Mutable reports whether setting controls accept changes. It is never true
// while master mode is inactive.
func (g *PermissionGate) Mutable() bool {
	active := g.session.IsActive()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mutable && active
}

// Mask returns, for every control present in controls, whether it is
// currently mutable. Absent controls are omitted.
func (g *PermissionGate) Mask(controls domain.ControlSet) map[domain.Capability]bool {
	mutable := g.Mutable()
	mask := make(map[domain.Capability]bool, len(controls))
	for c, present := range controls {
		if present {
			mask[c] = mutable
		}
	}
	return mask
}

// Settings returns the last settings read from the server and whether any
// read has succeeded yet.
func (g *PermissionGate) Settings() (domain.Settings, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings, g.loaded
}

// RequireMaster fails with domain.ErrPermissionDenied outside master mode.
func (g *PermissionGate) RequireMaster() error {
	if !g.session.IsActive() {
		return domain.ErrPermissionDenied
	}
	return nil
}

// IsMaster reports the optimistic master-mode view.
func (g *PermissionGate) IsMaster() bool {
	return g.session.IsActive()
}

func (g *PermissionGate) apply(ctx context.Context, state *domain.SettingsState) {
	g.mu.Lock()
	g.settings = state.Settings
	g.loaded = true
	g.mu.Unlock()

	g.session.ArmTimer(state.Settings.TimeoutMinutes)

	masterID := state.MasterID
	if !state.MasterMode {
		masterID = ""
	}
	g.session.Reconcile(ctx, masterID)

	g.SetMutable(g.session.IsActive())
	g.publish()
}

func (g *PermissionGate) publish() {
	snap := g.CurrentSnapshot()
	g.mu.Lock()
	consumer := g.consumer
	g.mu.Unlock()
	if consumer != nil {
		consumer(snap)
	}
}
