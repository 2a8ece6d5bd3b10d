package service

import (
	"github.com/rs/zerolog"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

type nopJournal struct{}

func (nopJournal) Record(domain.SessionEvent) {}

// LogJournal writes audit events to the structured log. It is used when no
// journal database is configured.
type LogJournal struct {
	log zerolog.Logger
}

var _ ports.SessionJournal = (*LogJournal)(nil)

func NewLogJournal(log zerolog.Logger) *LogJournal {
	return &LogJournal{log: log}
}

func (j *LogJournal) Record(e domain.SessionEvent) {
	j.log.Info().
		Str("event_id", e.ID).
		Str("type", string(e.Type)).
		Str("master_id", e.MasterID).
		Str("reason", string(e.Reason)).
		Time("at", e.At).
		Msg("master session event")
}
