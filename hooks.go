package hooks

import (
	"context"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hooks/core"
	"github.com/goliatone/go-hooks/hub"
	"github.com/goliatone/go-hooks/security"
	glog "github.com/goliatone/go-logger/glog"
)

type Option func(*Service)

func WithLogger(logger core.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(s *Service) {
		if provider == nil {
			return
		}
		if named := provider.GetLogger("hooks"); named != nil {
			s.logger = glog.Ensure(named)
		}
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

func WithErrorFactory(factory core.ErrorFactory) Option {
	return func(s *Service) {
		if factory != nil {
			s.errorFactory = factory
		}
	}
}

// WithErrorMapper replaces the mapper that normalizes errors surfaced from
// Deliver and RegisterHook into the HOOKS_* envelope.
func WithErrorMapper(mapper core.ErrorMapper) Option {
	return func(s *Service) {
		if mapper != nil {
			s.errorMapper = mapper
		}
	}
}

func WithSecretProvider(provider core.SecretProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.secretProvider = provider
		}
	}
}

func WithDeliveryLog(log core.DeliveryLog) Option {
	return func(s *Service) {
		if log != nil {
			s.deliveryLog = log
		}
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.configProvider = provider
		}
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(s *Service) {
		if resolver != nil {
			s.optionsResolver = resolver
		}
	}
}

// Service is the assembled delivery surface: resolved configuration, the
// event hub, and the authenticating registration path.
type Service struct {
	config          core.Config
	secret          string
	logger          core.Logger
	metrics         core.MetricsRecorder
	errorFactory    core.ErrorFactory
	errorMapper     core.ErrorMapper
	secretProvider  core.SecretProvider
	deliveryLog     core.DeliveryLog
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	hub             *hub.Hub
}

// New resolves configuration through the defaults, loaded, and runtime
// layers, unwraps an enveloped webhook secret when a secret provider is
// configured, and builds the hub.
func New(ctx context.Context, runtime core.Config, options ...Option) (*Service, error) {
	service := &Service{
		logger:          glog.Nop(),
		metrics:         core.NopMetricsRecorder{},
		errorFactory:    goerrors.New,
		errorMapper:     core.DefaultErrorMapper,
		configProvider:  core.NewCfgxConfigProvider(nil),
		optionsResolver: core.GoOptionsResolver{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(service)
	}

	defaults := core.DefaultConfig()
	loaded, err := service.configProvider.Load(ctx, defaults)
	if err != nil {
		return nil, service.mapError(err)
	}
	resolved, err := service.optionsResolver.Resolve(defaults, loaded, runtime)
	if err != nil {
		return nil, service.mapError(err)
	}
	service.config = resolved

	secret, err := service.resolveSecret(ctx, resolved.Webhook.Secret)
	if err != nil {
		return nil, err
	}
	service.secret = secret

	service.hub = hub.New(
		hub.WithLogger(service.logger),
		hub.WithMetricsRecorder(service.metrics),
		hub.WithDeliveryLog(service.deliveryLog),
		hub.WithWebhookConfig(resolved.Webhook),
	)

	return service, nil
}

func (s *Service) Config() core.Config {
	if s == nil {
		return core.Config{}
	}
	return s.config
}

func (s *Service) Hub() *hub.Hub {
	if s == nil {
		return nil
	}
	return s.hub
}

// RegisterHook binds a hook for the event. When a webhook secret is
// configured the hook goes behind the signature gate; without one the hook
// receives deliveries as-is.
func (s *Service) RegisterHook(event string, hook core.Hook) error {
	if s == nil || s.hub == nil {
		return errServiceNotConfigured()
	}
	if s.secret != "" {
		return s.mapError(s.hub.RegisterAuthenticated(event, s.secret, hook))
	}
	return s.mapError(s.hub.Register(event, hook))
}

// RegisterHookFunc is RegisterHook for bare functions.
func (s *Service) RegisterHookFunc(event string, fn func(core.Delivery)) error {
	return s.RegisterHook(event, core.HookFunc(fn))
}

func (s *Service) Deliver(ctx context.Context, delivery core.Delivery) error {
	if s == nil || s.hub == nil {
		return errServiceNotConfigured()
	}
	return s.mapError(s.hub.Deliver(ctx, delivery))
}

func (s *Service) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if s == nil || s.hub == nil {
		http.Error(w, "hooks service is not configured", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeHTTP(w, req)
}

func (s *Service) resolveSecret(ctx context.Context, configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return "", nil
	}
	if !security.IsEnveloped(configured) {
		return configured, nil
	}
	if s.secretProvider == nil {
		return "", s.errEnvelopedSecretWithoutProvider()
	}
	plaintext, err := s.secretProvider.Decrypt(ctx, []byte(configured))
	if err != nil {
		return "", s.mapError(err)
	}
	return string(plaintext), nil
}

var _ http.Handler = (*Service)(nil)
