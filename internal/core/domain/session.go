package domain

import "time"

const (
	DefaultTimeoutMinutes = 15
	MinTimeoutMinutes     = 1
	MaxTimeoutMinutes     = 240
)

// LogoutReason is reported to the server on master/logout.
type LogoutReason string

const (
	LogoutManual  LogoutReason = "manual"
	LogoutTimeout LogoutReason = "timeout"
	// LogoutServer is recorded locally when a settings fetch reports no
	// active master. It is never sent to the server.
	LogoutServer LogoutReason = "server"
)

// Freshness selects between the local optimistic view of the session and a
// read that reconciles with the server first.
type Freshness int

const (
	FreshnessOptimistic Freshness = iota
	FreshnessAuthoritative
)

// MasterSession is the elevated operating mode unlocked by a master scan-in.
// The zero value is the anonymous session.
type MasterSession struct {
	MasterID       string    `json:"master_id,omitempty"`
	TimeoutMinutes int       `json:"timeout_min"`
	EstablishedAt  time.Time `json:"established_at,omitempty"`
}

// Active reports whether the terminal is in master mode.
func (s MasterSession) Active() bool {
	return s.MasterID != ""
}

// ClampTimeout normalises a master session timeout:
//
//	0 (unset)  → DefaultTimeoutMinutes
//	< 1        → MinTimeoutMinutes
//	> 240      → MaxTimeoutMinutes
func ClampTimeout(minutes int) int {
	switch {
	case minutes == 0:
		return DefaultTimeoutMinutes
	case minutes < MinTimeoutMinutes:
		return MinTimeoutMinutes
	case minutes > MaxTimeoutMinutes:
		return MaxTimeoutMinutes
	default:
		return minutes
	}
}

// TimeoutInRange reports whether minutes may be saved as-is.
func TimeoutInRange(minutes int) bool {
	return minutes >= MinTimeoutMinutes && minutes <= MaxTimeoutMinutes
}

// SessionEventType classifies entries of the master-session audit journal.
type SessionEventType string

const (
	EventMasterLogin     SessionEventType = "master_login"
	EventMasterLogout    SessionEventType = "master_logout"
	EventMasterReconcile SessionEventType = "master_reconcile"
)

// SessionEvent records a single master-session transition.
type SessionEvent struct {
	ID               string           `json:"id" bson:"_id"`
	Type             SessionEventType `json:"type" bson:"type"`
	MasterID         string           `json:"master_id" bson:"master_id"`
	Reason           LogoutReason     `json:"reason,omitempty" bson:"reason,omitempty"`
	TokenFingerprint string           `json:"token_fingerprint,omitempty" bson:"token_fingerprint,omitempty"`
	At               time.Time        `json:"at" bson:"at"`
}
