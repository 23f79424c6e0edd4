package di

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"StockAdvisor/internal/domain/models"
	"StockAdvisor/internal/domain/repository"
	domsvc "StockAdvisor/internal/domain/service"
	"StockAdvisor/internal/handler/api"
	internalrepo "StockAdvisor/internal/repository"
	"StockAdvisor/internal/service/alphavantage"
	"StockAdvisor/internal/service/cache"
	"StockAdvisor/internal/service/ratelimit"
	"StockAdvisor/internal/services/explain"
	"StockAdvisor/internal/usecase"
	pkgcache "StockAdvisor/pkg/cache"
	"StockAdvisor/pkg/config"
	xhttp "StockAdvisor/pkg/http"
	pkgkafka "StockAdvisor/pkg/kafka"
	applogger "StockAdvisor/pkg/logger"
	"StockAdvisor/pkg/metrics"
	"StockAdvisor/pkg/server"
)

// ProvideLogger creates the application logger from the log section. With
// the digest enabled, warnings and errors are also aggregated and published
// to Kafka; the cleanup flushes the last batch.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	l = l.With(applogger.String("env", cfg.Environment))

	d := cfg.Log.Digest
	if !d.Enabled {
		return l, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(pkgkafka.WithBrokers(d.Brokers))
	if err != nil {
		return nil, nil, fmt.Errorf("log digest producer: %w", err)
	}
	collector := applogger.NewCollector(applogger.CollectorConfig{
		Interval:   d.Interval,
		MaxEntries: d.MaxEntries,
		Topic:      d.Topic,
		Publisher:  producer,
		OnError: func(err error) {
			l.Warn("log digest publish failed", applogger.Error(err))
		},
	})
	l.Info("log digest enabled", applogger.Strings("brokers", d.Brokers), applogger.String("topic", d.Topic))
	cleanup := func() {
		collector.Close()
		if err := producer.Close(); err != nil {
			l.Warn("log digest producer close error", applogger.Error(err))
		}
	}
	return l.Collect(collector), cleanup, nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when
// metrics are disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideRedisClient connects to Redis when a component uses the redis
// backend. Otherwise it returns nil.
func ProvideRedisClient(cfg *config.Config, l *applogger.Logger) (*redis.Client, func(), error) {
	if !cfg.UsesRedis() {
		return nil, func() {}, nil
	}
	cli, err := pkgcache.NewRedisClient(
		pkgcache.WithRedisAddr(cfg.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis client: %w", err)
	}
	l.Info("redis connected", applogger.String("addr", cfg.Redis.Addr))
	cleanup := func() {
		if err := cli.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return cli, cleanup, nil
}

// ProvideBytesCache selects the market data payload cache backend.
func ProvideBytesCache(cfg *config.Config, rdb *redis.Client) cache.BytesCache {
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(rdb, cfg.Redis.Prefix)
	}
	return cache.NewMemoryBytes(cache.NewTTLCache[[]byte](cfg.Cache.DefaultTTL))
}

// ProvideMarketData creates the Alpha Vantage client.
func ProvideMarketData(cfg *config.Config, c cache.BytesCache, m repository.Metrics, l *applogger.Logger) repository.MarketData {
	if cfg.AlphaVantage.APIKey == "" {
		l.Warn("alpha vantage api key is not set; market data requests will fail")
	}
	return alphavantage.New(alphavantage.Config{
		BaseURL:           cfg.AlphaVantage.BaseURL,
		APIKey:            cfg.AlphaVantage.APIKey,
		Timeout:           cfg.AlphaVantage.Timeout,
		RequestsPerMinute: cfg.AlphaVantage.RequestsPerMinute,
		CacheTTL:          cfg.AlphaVantage.CacheTTL,
	}, c, m, l.With(applogger.String("component", "alphavantage")))
}

// ProvidePolisher uses the OpenAI polisher when an API key is configured.
func ProvidePolisher(cfg *config.Config, l *applogger.Logger) (domsvc.Polisher, error) {
	if cfg.LLM.APIKey == "" {
		l.Info("llm key not set; explanations use the local draft")
		return explain.NewLocalPolisher(), nil
	}
	p, err := explain.NewOpenAIPolisher(explain.OpenAIConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, err
	}
	l.Info("llm polisher enabled", applogger.String("model", cfg.LLM.Model))
	return p, nil
}

// ProvideExplanationCache creates the per-process explanation cache.
func ProvideExplanationCache(cfg *config.Config) *cache.TTLCache[models.ExplanationRecord] {
	return cache.NewTTLCache[models.ExplanationRecord](cfg.Cache.ExplanationTTL)
}

func ProvideWatchlistStore(cfg *config.Config, rdb *redis.Client) repository.WatchlistStore {
	if cfg.Watchlist.Store == "redis" {
		return internalrepo.NewRedisWatchlistStore(rdb, cfg.Redis.Prefix)
	}
	return internalrepo.NewMemoryWatchlistStore()
}

func ProvideProfileStore(cfg *config.Config, rdb *redis.Client) repository.ProfileStore {
	if cfg.Watchlist.Store == "redis" {
		return internalrepo.NewRedisProfileStore(rdb, cfg.Redis.Prefix)
	}
	return internalrepo.NewMemoryProfileStore()
}

// ProvideKafkaProducer creates a Kafka producer when watchlist backups go to
// Kafka. Otherwise it returns nil.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	b := cfg.Watchlist.Backup
	if !b.Enabled || b.Type != "kafka" {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(b.Kafka.Brokers),
		pkgkafka.WithCompression(b.Kafka.Compression),
		pkgkafka.WithRequiredAcks(b.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(b.Kafka.WriteTimeout, b.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka backup enabled", applogger.Strings("brokers", b.Kafka.Brokers), applogger.String("topic", b.Kafka.Topic))
	cleanup := func() {
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideBackupSink selects where newly added watchlist entries are mirrored.
func ProvideBackupSink(cfg *config.Config, producer *pkgkafka.Producer) repository.BackupSink {
	b := cfg.Watchlist.Backup
	if !b.Enabled {
		return internalrepo.NoopBackup{}
	}
	switch b.Type {
	case "webhook":
		if b.WebhookURL == "" {
			return internalrepo.NoopBackup{}
		}
		return internalrepo.NewWebhookBackup(b.WebhookURL, b.AuthToken, b.Timeout)
	case "kafka":
		return internalrepo.NewKafkaBackup(producer, b.Kafka.Topic)
	default:
		return internalrepo.NoopBackup{}
	}
}

func ProvideProfileService(store repository.ProfileStore, l *applogger.Logger) *usecase.ProfileService {
	return usecase.NewProfileService(store, l)
}

func ProvideMarketService(cfg *config.Config, md repository.MarketData, profiles *usecase.ProfileService, l *applogger.Logger) *usecase.MarketService {
	return usecase.NewMarketService(md, profiles, cfg.Screener.DefaultSymbols, l)
}

func ProvideExplainer(
	cfg *config.Config,
	md repository.MarketData,
	p domsvc.Polisher,
	c *cache.TTLCache[models.ExplanationRecord],
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Explainer {
	return usecase.NewExplainer(md, p, c, cfg.Cache.ExplanationTTL, m, l)
}

func ProvideWatchlistService(
	store repository.WatchlistStore,
	sink repository.BackupSink,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.WatchlistService {
	return usecase.NewWatchlistService(store, sink, m, l)
}

// ProvideHandlers builds every HTTP handler the server registers.
func ProvideHandlers(
	cfg *config.Config,
	l *applogger.Logger,
	explainer *usecase.Explainer,
	market *usecase.MarketService,
	watchlist *usecase.WatchlistService,
	profiles *usecase.ProfileService,
) []xhttp.Handler {
	limit := api.RateLimit{
		Capacity:     cfg.RateLimit.Explain.Capacity,
		RefillPerSec: cfg.RateLimit.Explain.RefillPerSec,
	}
	return []xhttp.Handler{
		api.NewAdvisorHandler(l, explainer, market, ratelimit.New(), limit),
		api.NewMarketHandler(l, market),
		api.NewWatchlistHandler(l, watchlist),
		api.NewProfileHandler(l, profiles),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, handlers []xhttp.Handler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(l, handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS, cfg.Server.CORSOrigins...),
		xhttp.WithMetrics(metricsPath),
	)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}
