package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// Query filters the audit trail; zero fields are ignored.
type Query struct {
	Action string
	Entity string
	From   string
	To     string
	Page   int
	Limit  int
}

// Store persists audit rows. The gorm and in-memory repositories implement it.
type Store interface {
	WriteAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	actor := ev.Actor
	if actor == "" {
		actor = "system"
	}

	log := models.AuditLog{
		Actor:     actor,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		RequestID: ev.RequestID,
	}

	return l.store.WriteAuditLog(ctx, &log)
}

// Page normalises the pagination of q: page starts at 1, limit defaults to
// 50 and is capped at 200.
func Page(q Query) (page, limit int) {
	page, limit = q.Page, q.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
