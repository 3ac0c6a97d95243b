package exec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/froque/sqlast/ast"
)

// Stats holds cumulative execution counters.
type Stats struct {
	// Queries is the number of row-returning statements executed.
	Queries atomic.Int64
	// Execs is the number of non-row statements executed.
	Execs atomic.Int64
	// Duration is the total time spent in the database, in nanoseconds.
	Duration atomic.Int64
	// Slow counts statements exceeding the slow threshold.
	Slow atomic.Int64
	// Errors counts failed statements.
	Errors atomic.Int64
}

// Snapshot returns a point-in-time copy of the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Queries:  s.Queries.Load(),
		Execs:    s.Execs.Load(),
		Duration: time.Duration(s.Duration.Load()),
		Slow:     s.Slow.Load(),
		Errors:   s.Errors.Load(),
	}
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	s.Queries.Store(0)
	s.Execs.Store(0)
	s.Duration.Store(0)
	s.Slow.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is an immutable view of Stats.
type StatsSnapshot struct {
	Queries  int64
	Execs    int64
	Duration time.Duration
	Slow     int64
	Errors   int64
}

// Avg returns the average statement duration.
func (s StatsSnapshot) Avg() time.Duration {
	total := s.Queries + s.Execs
	if total == 0 {
		return 0
	}
	return s.Duration / time.Duration(total)
}

// String returns a log-friendly summary.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.Queries, s.Execs, s.Duration, s.Avg(), s.Slow, s.Errors)
}

// SlowHook is called when a statement exceeds the slow threshold.
type SlowHook func(ctx context.Context, sql string, args []any, d time.Duration)

// StatsDriver wraps a Driver with execution statistics and slow statement
// detection.
type StatsDriver struct {
	*Driver
	stats     *Stats
	mu        sync.RWMutex
	threshold time.Duration
	hook      SlowHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the slow statement threshold. Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) { s.threshold = d }
}

// WithSlowHook sets the callback for slow statements.
func WithSlowHook(h SlowHook) StatsOption {
	return func(s *StatsDriver) { s.hook = h }
}

// WithSlowLog logs slow statements through the given logger.
func WithSlowLog(log *slog.Logger) StatsOption {
	return WithSlowHook(func(ctx context.Context, sql string, args []any, d time.Duration) {
		log.WarnContext(ctx, "slow statement", "duration", d, "sql", sql, "args", args)
	})
}

// NewStatsDriver wraps drv with statistics collection.
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:    drv,
		stats:     &Stats{},
		threshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the underlying counters.
func (d *StatsDriver) Stats() *Stats { return d.stats }

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.threshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(t time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.threshold = t
}

// Query executes a row-returning statement and records statistics.
func (d *StatsDriver) Query(ctx context.Context, s ast.Statement) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.Driver.Query(ctx, s)
	d.record(ctx, s, start, err, true)
	return rows, err
}

// Exec executes a statement and records statistics.
func (d *StatsDriver) Exec(ctx context.Context, s ast.Statement) (sql.Result, error) {
	start := time.Now()
	res, err := d.Driver.Exec(ctx, s)
	d.record(ctx, s, start, err, false)
	return res, err
}

func (d *StatsDriver) record(ctx context.Context, s ast.Statement, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		d.stats.Queries.Add(1)
	} else {
		d.stats.Execs.Add(1)
	}
	d.stats.Duration.Add(int64(duration))
	if err != nil {
		d.stats.Errors.Add(1)
	}

	d.mu.RLock()
	threshold, hook := d.threshold, d.hook
	d.mu.RUnlock()

	if duration > threshold {
		d.stats.Slow.Add(1)
		if hook != nil {
			// Re-translation hits the plan cache; the statement already ran.
			if res, terr := d.Translate(s); terr == nil {
				hook(ctx, res.SQL, res.Args(), duration)
			}
		}
	}
}
