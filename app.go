package postboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/postboard/client"
	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/client/auth/transport"
	"github.com/viant/postboard/config"
	"github.com/viant/postboard/entity"
	"github.com/viant/postboard/guard"
	"github.com/viant/postboard/internal/logging"
	"github.com/viant/postboard/internal/metrics"
	"github.com/viant/postboard/notify"
	"github.com/viant/postboard/router"
	"go.uber.org/zap"
)

// DefaultNotificationCapacity bounds pending notifications
const DefaultNotificationCapacity = 64

// App represents a wired client session
type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	Store         *store.Store
	Cache         *entity.Cache
	Notifications *notify.Queue
	Metrics       *metrics.Transport
	Client        *client.Client
	Guard         *guard.Guard
	Navigator     *router.Navigator
}

// Options represents optional App dependencies
type Options struct {
	Logger     *zap.Logger
	Transport  http.RoundTripper
	Registerer prometheus.Registerer
	// Jar overrides the file persisted cookie jar
	Jar http.CookieJar
	// Preference overrides the file persisted remember me flag
	Preference store.Preference
}

type Option func(o *Options)

// WithLogger sets logger, otherwise one is built from config
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTransport sets underlying http transport
func WithTransport(rt http.RoundTripper) Option {
	return func(o *Options) {
		o.Transport = rt
	}
}

// WithRegisterer registers transport metrics on reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) {
		o.Registerer = reg
	}
}

// WithCookieJar sets cookie jar
func WithCookieJar(jar http.CookieJar) Option {
	return func(o *Options) {
		o.Jar = jar
	}
}

// WithPreference sets remember me preference
func WithPreference(preference store.Preference) Option {
	return func(o *Options) {
		o.Preference = preference
	}
}

// New creates an app for cfg, nil cfg uses defaults
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := &Options{Transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.Logger
	if logger == nil {
		logger = logging.New(cfg.Log)
	}
	if options.Preference == nil {
		options.Preference = store.NewFilePreference(cfg.PreferenceURL)
	}
	if options.Jar == nil {
		jar, err := transport.NewFileJar(cfg.CookieJarPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cookie jar %v: %w", cfg.CookieJarPath, err)
		}
		options.Jar = jar
	}

	aStore, err := store.New(ctx, store.WithLogger(logger), store.WithPreference(options.Preference))
	if err != nil {
		return nil, err
	}
	cache := entity.New()
	aStore.OnLogout(cache.ResetStore)

	queue := notify.NewQueue(DefaultNotificationCapacity)
	notifier := notify.Multi(queue, notify.NewLogger(logger))

	collectors := metrics.NewTransport()
	if options.Registerer != nil {
		if err = collectors.Register(options.Registerer); err != nil {
			return nil, err
		}
	}

	refresher := auth.NewHTTPRefresher(cfg.BaseURL, &http.Client{Transport: options.Transport, Jar: options.Jar})
	aGuard := guard.New(aStore, notifier, cfg.HomePath)
	navigator := router.New(aStore, aGuard, router.WithRefresher(refresher), router.WithLogger(logger))

	aClient, err := client.New(cfg.BaseURL,
		client.WithStore(aStore),
		client.WithCache(cache),
		client.WithNotifier(notifier),
		client.WithLogger(logger),
		client.WithCookieJar(options.Jar),
		client.WithTransport(options.Transport),
		client.WithRefresher(refresher),
		client.WithRedirect(navigator.Redirect),
		client.WithLoginPath(cfg.LoginPath),
		client.WithMetrics(collectors),
	)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:        cfg,
		Logger:        logger,
		Store:         aStore,
		Cache:         cache,
		Notifications: queue,
		Metrics:       collectors,
		Client:        aClient,
		Guard:         aGuard,
		Navigator:     navigator,
	}, nil
}

// Close flushes logger
func (a *App) Close() error {
	_ = a.Logger.Sync()
	return nil
}
