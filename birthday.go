package birthday

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kdvornichenko/birthday/internal/config"
	"github.com/kdvornichenko/birthday/internal/logging"
	"github.com/kdvornichenko/birthday/pkg/adapters/httpapi"
	"github.com/kdvornichenko/birthday/pkg/adapters/memory"
	redisstore "github.com/kdvornichenko/birthday/pkg/adapters/redis"
	"github.com/kdvornichenko/birthday/pkg/adapters/telegram"
	"github.com/kdvornichenko/birthday/pkg/observability"
	"github.com/kdvornichenko/birthday/pkg/persistence/middleware"
	"github.com/kdvornichenko/birthday/pkg/ports"
	"github.com/kdvornichenko/birthday/pkg/schema"
	"github.com/kdvornichenko/birthday/pkg/session"
)

// Version is the release version of the service.
const Version = "1.0.0"

// App is the high-level entry point for the invitation service. It wires
// the questionnaire schema, the session store, the delivery courier and
// the session manager into one unit that the commands (and embedding
// programs) consume.
type App struct {
	cfg      *config.Config
	schema   *schema.Schema
	store    ports.ResponseStore
	courier  ports.Courier
	manager  *session.Manager
	logger   *slog.Logger
	registry *prometheus.Registry

	closers []func() error
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithStore injects a custom session store, bypassing the configured
// memory or Redis store.
func WithStore(store ports.ResponseStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithCourier injects a custom delivery courier, bypassing the Telegram
// client.
func WithCourier(courier ports.Courier) Option {
	return func(a *App) {
		a.courier = courier
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New initializes the application from the given configuration. Missing
// Telegram credentials are not an error: delivery then fails per attempt
// with a diagnostic naming the missing setting.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(app)
	}

	s, err := schema.Load(cfg.Lang)
	if err != nil {
		return nil, fmt.Errorf("loading questionnaire: %w", err)
	}
	app.schema = s

	if app.store == nil {
		if cfg.RedisAddr != "" {
			store := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
				redisstore.WithTTL(cfg.SessionTTL))
			app.store = store
			app.closers = append(app.closers, store.Close)
		} else {
			app.store = memory.NewStore()
		}
	}

	if len(cfg.EncryptionKey) > 0 {
		app.store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: cfg.EncryptionKey,
		})(app.store)
	}

	if app.courier == nil {
		app.courier = telegram.New(telegram.Config{
			BaseURL: cfg.APIBase,
			Token:   cfg.BotToken,
			ChatID:  cfg.ChatID,
		})
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(app.registry)

	app.manager = session.NewManager(s, app.store, app.courier,
		session.WithLogger(app.logger),
		session.WithMetrics(metrics),
	)

	return app, nil
}

// Manager returns the session manager.
func (a *App) Manager() *session.Manager {
	return a.manager
}

// Schema returns the loaded questionnaire definition.
func (a *App) Schema() *schema.Schema {
	return a.schema
}

// Handler returns the HTTP API handler, including /metrics.
func (a *App) Handler() http.Handler {
	return httpapi.NewHandler(a.manager, a.registry,
		httpapi.WithVersion(Version),
		httpapi.WithLogger(a.logger),
	)
}

// Close releases the resources held by the app (store connections).
func (a *App) Close() error {
	var first error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
