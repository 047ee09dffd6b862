// Package app wires the loaded inputs, the state store and the
// aggregation functions into the load → normalize → aggregate → render
// cycle, and re-runs the aggregation whenever the state changes.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"ankidash/internal/config"
	"ankidash/internal/domain"
	"ankidash/internal/ingest"
	"ankidash/internal/service/dashboard"
	"ankidash/internal/state"
)

// Snapshot bundles everything the rendering layer needs for one paint:
// the filtered records plus every derived aggregate under the current
// filter, window and year selections.
type Snapshot struct {
	State    state.ApplicationState
	Records  []domain.CardRecord
	Levels   map[domain.CardLevel]int
	Groups   []dashboard.GroupStats
	Series   []dashboard.TimeBucket
	Calendar []dashboard.CalendarDay
	Summary  dashboard.Summary
	Totals   dashboard.ActivityStats
	Streak   int
}

// RenderFunc consumes a freshly computed snapshot. Rendering itself
// lives outside this package; the CLI's plain-text printer is one
// implementation.
type RenderFunc func(Snapshot)

// App owns the normalized data and drives recomputation.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	store *state.Store
	loc   *time.Location
	now   func() time.Time

	mu      sync.RWMutex
	records []domain.CardRecord
	index   domain.ActivityIndex

	render      RenderFunc
	unsubscribe func()
}

// New creates the orchestrator and subscribes it to every state change,
// so dependent views are recomputed from the change payload rather than
// from scratch. Call Close to detach.
func New(log *slog.Logger, cfg *config.Config, store *state.Store) *App {
	a := &App{
		cfg:   cfg,
		log:   log,
		store: store,
		loc:   cfg.Location(),
		now:   time.Now,
		index: domain.ActivityIndex{},
	}
	a.unsubscribe = store.Subscribe(state.CategoryAny, func(c state.Change) {
		// The store is mid-notification here; build from the delivered
		// state instead of calling back into it.
		a.emit(a.buildSnapshot(c.New))
	})
	return a
}

// SetRenderFunc installs the snapshot consumer. Passing nil disables
// rendering (aggregates are still computed on demand via Snapshot).
func (a *App) SetRenderFunc(fn RenderFunc) {
	a.mu.Lock()
	a.render = fn
	a.mu.Unlock()
}

// Load reads and normalizes both inputs. The card export is required:
// when no candidate path is readable or the export is unparseable, Load
// fails and no dashboard state is touched. The activity history is
// optional and degrades to an empty index.
func (a *App) Load() error {
	data, path, err := readFirst(a.cfg.Data.CardsPaths)
	if err != nil {
		return fmt.Errorf("%w: card export: %v", domain.ErrMissingInput, err)
	}

	now := a.now()
	records, stats, err := ingest.ParseCards(a.log, data, now, a.loc)
	if err != nil {
		return fmt.Errorf("parse card export %s: %w", path, err)
	}
	a.log.Info("card export loaded",
		slog.String("path", path),
		slog.Int("records", stats.Produced),
		slog.Int("skipped", stats.Skipped),
	)

	index := domain.ActivityIndex{}
	if actData, actPath, err := readFirst(a.cfg.Data.ActivityPaths); err != nil {
		a.log.Warn("activity history unavailable, counters will read zero",
			slog.String("error", err.Error()))
	} else if parsed, err := ingest.ParseActivity(a.log, actData); err != nil {
		a.log.Warn("activity history unreadable, counters will read zero",
			slog.String("path", actPath),
			slog.String("error", err.Error()))
	} else {
		index = parsed
		a.log.Info("activity history loaded",
			slog.String("path", actPath),
			slog.Int("days", len(index)))
	}

	a.mu.Lock()
	a.records = records
	a.index = index
	a.mu.Unlock()
	return nil
}

// Refresh re-runs the full pipeline and re-renders; new derived data
// supersedes the old wholesale.
func (a *App) Refresh() error {
	if err := a.Load(); err != nil {
		return err
	}
	a.emit(a.Snapshot())
	return nil
}

// Records returns the normalized, unfiltered record sequence.
func (a *App) Records() []domain.CardRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.records
}

// Activity returns the normalized activity index.
func (a *App) Activity() domain.ActivityIndex {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.index
}

// Store returns the state store for subscription and updates.
func (a *App) Store() *state.Store { return a.store }

// Snapshot computes all aggregates under the current state.
func (a *App) Snapshot() Snapshot {
	return a.buildSnapshot(a.store.State())
}

func (a *App) buildSnapshot(st state.ApplicationState) Snapshot {
	a.mu.RLock()
	records := a.records
	index := a.index
	a.mu.RUnlock()

	now := a.now()
	filtered := dashboard.FilterCards(records, st.Filters, index, now, a.loc)

	return Snapshot{
		State:    st,
		Records:  filtered,
		Levels:   dashboard.LevelDistribution(filtered),
		Groups:   dashboard.GroupPerformance(filtered),
		Series:   dashboard.TimeSeries(st.View.TimeWindow, index, now, a.loc, st.Language),
		Calendar: dashboard.CalendarIntensity(st.View.CalendarYear, index, a.loc),
		Summary:  dashboard.SummaryStats(filtered, index, now, a.loc),
		Totals:   dashboard.ActivityTotals(index),
		Streak:   dashboard.Streak(index, now, a.loc),
	}
}

func (a *App) emit(snap Snapshot) {
	a.mu.RLock()
	render := a.render
	a.mu.RUnlock()
	if render != nil {
		render(snap)
	}
}

// Run keeps the app alive until ctx is done, refreshing on data-file
// changes (when watching is enabled) and on the cron schedule (when one
// is configured).
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Refresh.Schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(a.cfg.Refresh.Schedule, a.scheduledRefresh); err != nil {
			return fmt.Errorf("refresh schedule %q: %w", a.cfg.Refresh.Schedule, err)
		}
		c.Start()
		defer c.Stop()
		a.log.Info("scheduled refresh enabled", slog.String("schedule", a.cfg.Refresh.Schedule))
	}

	if a.cfg.Refresh.Watch {
		return a.watch(ctx)
	}

	<-ctx.Done()
	return ctx.Err()
}

// Close detaches the app from the state store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

func (a *App) scheduledRefresh() {
	if err := a.Refresh(); err != nil {
		a.log.Error("scheduled refresh failed", slog.String("error", err.Error()))
	}
}

// readFirst returns the contents of the first readable candidate path.
func readFirst(paths []string) ([]byte, string, error) {
	var firstErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no candidate paths configured")
	}
	return nil, "", firstErr
}
