// Command ankidash loads an Anki card export and activity history,
// applies the persisted dashboard state and prints the aggregated
// dashboard to stdout. With watching or a refresh schedule enabled it
// stays running and reprints on every data or state change.
//
// Flags:
//
//	--watch    watch the data files and refresh on change
//	--window   time-series window: week, month or year
//	--year     calendar intensity year
//	--search   free-text filter applied before printing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ankidash/internal/app"
	"ankidash/internal/config"
	"ankidash/internal/domain"
	"ankidash/internal/state"
)

func main() {
	watchFlag := flag.Bool("watch", false, "watch the data files and refresh on change")
	windowFlag := flag.String("window", "", "time-series window: week, month or year")
	yearFlag := flag.Int("year", 0, "calendar intensity year")
	searchFlag := flag.String("search", "", "free-text filter")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *watchFlag {
		cfg.Refresh.Watch = true
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting ankidash", slog.String("version", app.BuildVersion()))

	storage, err := state.OpenSQLite(cfg.State.DBPath)
	if err != nil {
		logger.Error("open state storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	store := state.NewStore(logger, storage, cfg.State.Key, time.Now())

	a := app.New(logger, cfg, store)
	defer a.Close()

	if err := a.Load(); err != nil {
		logger.Error("load data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	a.SetRenderFunc(printSnapshot)

	// Flag overrides go through the store so they persist like any other
	// preference change; each one reprints via the render subscription.
	applied := false
	if *windowFlag != "" {
		w := domain.TimeWindow(*windowFlag)
		if !w.IsValid() {
			logger.Error("invalid window", slog.String("window", *windowFlag))
			os.Exit(1)
		}
		applied = store.SetTimeWindow(w) || applied
	}
	if *yearFlag != 0 {
		applied = store.SetCalendarYear(*yearFlag) || applied
	}
	if *searchFlag != "" {
		applied = store.SetSearchQuery(*searchFlag) || applied
	}
	if !applied {
		printSnapshot(a.Snapshot())
	}

	if cfg.Refresh.Watch || cfg.Refresh.Schedule != "" {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func printSnapshot(snap app.Snapshot) {
	fmt.Printf("\n== Dashboard (%s, %s) ==\n", snap.State.Theme, snap.State.Language)
	fmt.Printf("cards: %d  studied today: %d  new today: %d  new this week: %d  avg/day: %d  streak: %d\n",
		snap.Summary.TotalCards, snap.Summary.StudiedToday, snap.Summary.NewToday,
		snap.Summary.NewThisWeek, snap.Summary.AverageDaily, snap.Streak)

	fmt.Println("\nlevels:")
	for _, level := range domain.AllCardLevels() {
		if n := snap.Levels[level]; n > 0 {
			fmt.Printf("  %-16s %d\n", level, n)
		}
	}

	fmt.Println("\ngroups:")
	for i, g := range snap.Groups {
		if i == 10 {
			fmt.Printf("  ... and %d more\n", len(snap.Groups)-i)
			break
		}
		fmt.Printf("  %-32s %d\n", g.Name, g.Total)
	}

	fmt.Printf("\nactivity (%s):\n", snap.State.View.TimeWindow)
	for _, b := range snap.Series {
		fmt.Printf("  %-10s reviews %-4d new %d\n", b.Label, b.Reviews, b.NewStudies)
	}

	fmt.Printf("\nhistory: %d days tracked, %d active, %.1f reviews/day, %d groups seen\n",
		snap.Totals.DaysTracked, snap.Totals.ActiveDays,
		snap.Totals.AverageDailyReviews, snap.Totals.UniqueGroups)
}
