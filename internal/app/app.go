package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/assets"
	"github.com/mdnaeem95/musollah-sub007/internal/config"
	"github.com/mdnaeem95/musollah-sub007/internal/domain"
	"github.com/mdnaeem95/musollah-sub007/internal/notify"
	"github.com/mdnaeem95/musollah-sub007/internal/praytime"
	"github.com/mdnaeem95/musollah-sub007/internal/scheduler"
	"github.com/mdnaeem95/musollah-sub007/internal/store"
	"github.com/mdnaeem95/musollah-sub007/internal/telegram"
)

// rollSchedule fires daily shortly after midnight so the lookahead
// window keeps covering future days. The coverage gate makes it cheap
// when nothing needs doing.
const rollSchedule = "5 0 * * *"

type App struct {
	cfg     config.Config
	log     *zap.Logger
	loc     *time.Location
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server

	db        *store.DB
	settings  *store.SettingsRepo
	resolver  *praytime.Resolver
	sched     *scheduler.Scheduler
	canceller *scheduler.Canceller
	router    *telegram.Router
	cron      *cron.Cron
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	var bot *tgbotapi.BotAPI
	if cfg.NotifyMode == "telegram" {
		bot, err = tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			return nil, fmt.Errorf("telegram init: %w", err)
		}
		bot.Debug = false
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, loc: loc, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting prayer notifier",
		zap.String("mode", a.cfg.NotifyMode),
		zap.String("tz", a.cfg.Timezone),
		zap.String("http", a.cfg.HTTPAddr),
	)

	db, err := store.Open(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.db = db
	defer func() { _ = a.db.Close() }()

	dataset := store.NewDataset(db)
	if err := a.seedDataset(ctx, dataset); err != nil {
		// A missing dataset is survivable; the computed source covers it.
		a.log.Warn("dataset seeding failed", zap.Error(err))
	}

	a.settings = store.NewSettingsRepo(db, a.defaultSettings())
	a.resolver = praytime.NewResolver(
		praytime.NewDatasetSource(dataset),
		praytime.NewSolarSource(a.loc),
		a.log,
	)

	scheduleStore := store.NewScheduleStore(db, a.cfg.CoverageMinDays)
	notifier := notify.NewTimerNotifier(a.sender(), a.log)
	clock := scheduler.SystemClock{}
	a.canceller = scheduler.NewCanceller(notifier, scheduleStore, clock, a.log)
	a.sched = scheduler.New(notifier, a.resolver, scheduleStore, a.canceller, clock, a.log, scheduler.Config{
		LookaheadDays: a.cfg.LookaheadDays,
		Location:      a.loc,
	})

	// Timers do not survive restarts, so the boot run always forces a
	// full rebuild regardless of what the store claims is covered.
	a.Reschedule(ctx, true)

	a.cron = cron.New(cron.WithLocation(a.loc))
	if _, err := a.cron.AddFunc(rollSchedule, func() {
		a.Reschedule(context.Background(), false)
	}); err != nil {
		return fmt.Errorf("cron setup: %w", err)
	}
	a.cron.Start()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var updCh tgbotapi.UpdatesChannel
	if a.bot != nil {
		a.router = telegram.NewRouter(a.bot, a.log, a.settings, a.resolver, a, a.coords(), a.loc, a.cfg.ChatID)
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updCh = a.bot.GetUpdatesChan(u)
	}

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.shutdown()
			return nil
		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

// Reschedule runs one scheduling pass. force bypasses the coverage gate
// so the window is always rebuilt; config changes and boot use it. The
// cancellation of the old window happens inside the run, after the
// permission check, so a denied run never loses pending notifications.
func (a *App) Reschedule(ctx context.Context, force bool) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		a.log.Error("reading settings failed, run skipped", zap.Error(err))
		return
	}
	coords := a.coords()

	// Resolve today once up front; the scheduler reuses it for day 0.
	var today *domain.DailyPrayerTimes
	if t, err := a.resolver.Resolve(ctx, domain.DateOf(time.Now().In(a.loc)), coords); err == nil {
		today = &t
	}

	a.sched.Run(ctx, scheduler.RunInput{
		Today:    today,
		Settings: settings,
		Coords:   coords,
		Force:    force,
	})
}

// coords returns the configured location, or the Singapore default with
// a warning when none is set. Absence is not an error.
func (a *App) coords() praytime.Coordinates {
	if a.cfg.Latitude == 0 && a.cfg.Longitude == 0 {
		a.log.Warn("no location configured, using default",
			zap.Float64("lat", config.DefaultLatitude),
			zap.Float64("lon", config.DefaultLongitude))
		return praytime.Coordinates{Lat: config.DefaultLatitude, Lon: config.DefaultLongitude}
	}
	return praytime.Coordinates{Lat: a.cfg.Latitude, Lon: a.cfg.Longitude}
}

// sender picks the delivery channel at composition time; nothing
// downstream branches on the mode again.
func (a *App) sender() notify.Sender {
	if a.bot != nil {
		return notify.NewTelegramSender(a.bot, a.cfg.ChatID)
	}
	return notify.NewLogSender(a.log)
}

// seedDataset loads the embedded dataset, plus an optional external
// file, into the prayer_times table.
func (a *App) seedDataset(ctx context.Context, dataset *store.Dataset) error {
	n, err := dataset.SeedJSON(ctx, assets.PrayerTimesSG)
	if err != nil {
		return err
	}
	if a.cfg.DatasetPath != "" {
		blob, err := os.ReadFile(a.cfg.DatasetPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", a.cfg.DatasetPath, err)
		}
		m, err := dataset.SeedJSON(ctx, blob)
		if err != nil {
			return err
		}
		n += m
	}
	a.log.Info("prayer-times dataset seeded", zap.Int("entries", n))
	return nil
}

func (a *App) defaultSettings() domain.Settings {
	s := domain.Settings{
		ReminderOffsetMin: a.cfg.ReminderOffsetMin,
		Sound:             a.cfg.AlertSound,
	}
	for _, name := range a.cfg.MutedPrayers {
		p, err := domain.ParsePrayer(name)
		if err != nil {
			a.log.Warn("ignoring unknown muted prayer", zap.String("name", name))
			continue
		}
		s = s.WithMuted(p)
	}
	return s
}

func (a *App) shutdown() {
	cronCtx := a.cron.Stop()
	<-cronCtx.Done()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
}
