package progress

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ppiankov/bacitit/internal/logging"
	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/search"
)

// Reporter logs every new record and, at most once per interval, the
// search counters
type Reporter struct {
	limiter *rate.Limiter
	logger  *zap.Logger
	start   time.Time
}

// NewReporter creates a reporter. interval <= 0 disables progress lines;
// records are always logged.
func NewReporter(logger *zap.Logger, interval time.Duration) *Reporter {
	r := &Reporter{
		logger: logging.OrNop(logger),
		start:  time.Now(),
	}
	if interval > 0 {
		r.limiter = rate.NewLimiter(rate.Every(interval), 1)
		// Drain the initial token so the first line waits a full interval
		r.limiter.Allow()
	}
	return r
}

// Tick logs progress if the interval has elapsed, and reports whether it did
func (r *Reporter) Tick(stats search.Stats, best float64, hasBest bool) bool {
	if r.limiter == nil || !r.limiter.Allow() {
		return false
	}
	fields := []zap.Field{
		zap.Int64("states", stats.States),
		zap.Int64("valid", stats.Valid),
		zap.Int64("first_conflicts", stats.FirstConflicts),
		zap.Int64("second_conflicts", stats.SecondConflicts),
		zap.Duration("elapsed", time.Since(r.start).Round(time.Millisecond)),
	}
	if hasBest {
		fields = append(fields, zap.Float64("best", best))
	}
	r.logger.Info("search progress", fields...)
	return true
}

// Record logs a newly retained assignment
func (r *Reporter) Record(c model.CandidateNumbers, index int64) {
	r.logger.Info("new record",
		zap.Int64("record", index),
		zap.String("numbers", c.Assignment().String()),
		zap.Float64("score", c.Score),
	)
}
