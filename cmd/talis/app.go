package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/talis/internal/config"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/i18n"
	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/orchestrators/dice"
	"github.com/KirkDiggler/talis/internal/pkg/clock"
	"github.com/KirkDiggler/talis/internal/pkg/idgen"
	"github.com/KirkDiggler/talis/internal/preferences"
	"github.com/KirkDiggler/talis/internal/redis"
	"github.com/KirkDiggler/talis/internal/registry"
	"github.com/KirkDiggler/talis/internal/rollers"
	"github.com/KirkDiggler/talis/internal/storage"
	"github.com/KirkDiggler/talis/internal/store"
)

const fallbackLanguage = "en"

// globalFlags override the environment configuration
type globalFlags struct {
	env       string
	storage   string
	redisAddr string
	output    string
	logLevel  string
	logFormat string
}

var flags globalFlags

func bindGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.env, "env", "", "environment name (overrides TALIS_ENV)")
	pf.StringVar(&flags.storage, "storage", "", "storage backend: redis or memory (overrides TALIS_STORAGE)")
	pf.StringVar(&flags.redisAddr, "redis-addr", "", "Redis address (overrides TALIS_REDIS_ADDR)")
	pf.StringVarP(&flags.output, "output", "o", "", "output format: text, json or yaml (overrides TALIS_OUTPUT)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (overrides TALIS_LOG_LEVEL)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json (overrides TALIS_LOG_FORMAT)")
}

// apply copies every set flag onto cfg
func (f globalFlags) apply(cfg *config.Config) {
	for dst, v := range map[*string]string{
		&cfg.Env:       f.env,
		&cfg.Storage:   f.storage,
		&cfg.RedisAddr: f.redisAddr,
		&cfg.Output:    f.output,
		&cfg.LogLevel:  f.logLevel,
		&cfg.LogFormat: f.logFormat,
	} {
		if v != "" {
			*dst = v
		}
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// app is the wired application shared by every command
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	localizer *i18n.Localizer
	notices   *notify.Recorder
	service   dice.Service
	closeFn   func() error
}

type wireSettings struct {
	readOnlyRollers bool
}

// wireOption customizes how the app is built
type wireOption func(*wireSettings)

// readOnlyRollers hydrates the roller stores without letting them write or
// discard anything. Orchestrator operations still write.
func readOnlyRollers() wireOption {
	return func(s *wireSettings) {
		s.readOnlyRollers = true
	}
}

// withApp loads configuration, builds the app, runs fn and closes the app
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error, opts ...wireOption) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, os.Stderr, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			a.logger.Warn("Failed to close storage", "error", err)
		}
	}()

	return fn(ctx, a)
}

func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer, opts ...wireOption) (*app, error) {
	logger, err := cfg.NewLogger(logOut)
	if err != nil {
		return nil, err
	}

	kv, closeFn, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	a, err := wire(ctx, cfg, logger, kv, opts...)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	a.closeFn = closeFn
	return a, nil
}

// openStorage returns the configured backend and its release func
func openStorage(cfg *config.Config) (storage.KeyValue, func() error, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return storage.NewMemory(), func() error { return nil }, nil
	case config.StorageRedis:
		client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create redis client")
		}
		kv, err := storage.NewRedis(&storage.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return kv, client.Close, nil
	default:
		return nil, nil, errors.InvalidArgumentf("unknown storage backend %q", cfg.Storage)
	}
}

// wire builds every component on top of kv
func wire(ctx context.Context, cfg *config.Config, logger *slog.Logger, kv storage.KeyValue, opts ...wireOption) (*app, error) {
	var settings wireSettings
	for _, opt := range opts {
		opt(&settings)
	}

	bundle, err := i18n.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load translations")
	}

	prefs, err := preferences.New(&preferences.Config{
		Storage:   kv,
		Languages: orderLanguages(bundle.Languages()),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	localizer, err := i18n.NewLocalizer(bundle, prefs.Load(ctx).Language)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create localizer")
	}

	notices := notify.NewRecorder()
	keys := registry.New()
	rollerStorage := storage.NewNamespaced(kv, cfg.Namespace)

	var hydrateFrom storage.KeyValue = rollerStorage
	if settings.readOnlyRollers {
		hydrateFrom = storage.NewReadOnly(rollerStorage)
	}

	deps := &rollers.Deps{
		Storage:     hydrateFrom,
		Registry:    keys,
		Notifier:    notify.Fanout{notify.NewLog(logger), notices},
		Translator:  localizer,
		Roller:      toolkitdice.DefaultRoller,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID(""),
		Inspector:   store.NewInspector(logger, cfg.IsProduction()),
		Logger:      logger,
	}

	rs, err := dice.NewRollers(ctx, deps)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rollers")
	}

	service, err := dice.NewOrchestrator(&dice.Config{
		Rollers:     rs,
		Preferences: prefs,
		Storage:     rollerStorage,
		Registry:    keys,
		Language:    localizer,
		Logger:      logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice orchestrator")
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		localizer: localizer,
		notices:   notices,
		service:   service,
		closeFn:   func() error { return nil },
	}, nil
}

func (a *app) close() error {
	return a.closeFn()
}

// orderLanguages puts the fallback language first so it becomes the default
func orderLanguages(langs []string) []string {
	out := []string{fallbackLanguage}
	for _, l := range langs {
		if l != fallbackLanguage {
			out = append(out, l)
		}
	}
	return slices.Clip(out)
}
