package report

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-reportgen/pkg/logging"
)

// auditRecord ties one generation attempt to its log lines. The record is
// created before rendering starts so failures still leave a trace.
type auditRecord struct {
	id      string
	title   string
	started time.Time
	now     func() time.Time
}

func (o *Orchestrator) newAuditRecord(req Request) *auditRecord {
	return &auditRecord{
		id:      uuid.NewString(),
		title:   req.Title,
		started: o.now(),
		now:     o.now,
	}
}

func (a *auditRecord) log(msg string) {
	logging.Logger().Info(msg,
		slog.String("audit_id", a.id),
		slog.String("title", a.title))
}

func (a *auditRecord) fail(err error) {
	logging.Logger().Error("report generation failed",
		slog.String("audit_id", a.id),
		slog.String("title", a.title),
		slog.Duration("elapsed", a.now().Sub(a.started)),
		slog.String("error", err.Error()))
}

func (a *auditRecord) complete(renderer string, size int) {
	logging.Logger().Info("report generated",
		slog.String("audit_id", a.id),
		slog.String("title", a.title),
		slog.String("renderer", renderer),
		slog.Int("bytes", size),
		slog.Duration("elapsed", a.now().Sub(a.started)))
}
