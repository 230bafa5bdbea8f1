package server

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/database"
	"github.com/primitivehl/whitelist-checker/metrics"
)

// checkRecorder stores terminal check results along with request details.
type checkRecorder struct {
	db        database.Store
	logger    log.Logger
	sessionId string
	ipHash    string
	origin    string
}

func (r *checkRecorder) RecordCheck(res checker.Result, startedAt time.Time) {
	entry := &database.CheckEntry{
		Id:              uuid.New(),
		SessionId:       r.sessionId,
		RequestedAt:     startedAt,
		InsertedAt:      Now(),
		CheckDurationMs: Now().Sub(startedAt).Milliseconds(),
		Address:         res.Address,
		Status:          res.Status.String(),
		Error:           res.Error,
		IpHash:          r.ipHash,
		Origin:          r.origin,
	}
	if res.IsWhitelisted != nil {
		entry.IsWhitelisted = *res.IsWhitelisted
	}
	if err := r.db.SaveCheckEntry(entry); err != nil {
		metrics.IncDatabaseErr()
		r.logger.Error("[checkRecorder] SaveCheckEntry failed", "error", err)
	}
}
