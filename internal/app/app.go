// Package app wires configuration, backends and the prediction service
// shared by every entrypoint.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/config"
	"careerfit-workers/internal/common/database"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/observability"
	"careerfit-workers/internal/history"
	"careerfit-workers/internal/predictor"
	"careerfit-workers/internal/userdata"
)

// App holds the connected backends and the prediction service built on them.
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Obs      *observability.Observability
	Postgres *database.PostgresClient
	Redis    *database.RedisClient
	Elastic  *database.ElasticsearchClient
	Service  *predictor.Service
}

// NewLogger builds the process logger from the logging section.
func NewLogger(cfg *config.Config) logger.Logger {
	return logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
}

// New connects Postgres, and Redis and Elasticsearch when configured, each
// with retry, then assembles the prediction service.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, serviceName string) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	obs, err := observability.New(serviceName)
	if err != nil {
		log.Warn("otel exporter unavailable, continuing without otel metrics", map[string]interface{}{"error": err.Error()})
	}
	a.Obs = obs

	err = RetryWithBackoff(ctx, func() error {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		a.Postgres = pg
		return nil
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info("PostgreSQL connected successfully", nil)

	if cfg.Database.Redis.Address != "" {
		err = RetryWithBackoff(ctx, func() error {
			rc, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rc.Ping(ctx); err != nil {
				rc.Close()
				return err
			}
			a.Redis = rc
			return nil
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			a.Close()
			return nil, err
		}
		log.Info("Redis connected successfully", nil)
	}

	if cfg.Database.Elasticsearch.Enabled() {
		err = RetryWithBackoff(ctx, func() error {
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}
			a.Elastic = es
			return nil
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			a.Close()
			return nil, err
		}
		log.Info("Elasticsearch connected successfully", nil)
	}

	var rdb redis.Cmdable
	if a.Redis != nil {
		rdb = a.Redis.GetClient()
	}
	var esClient *elasticsearch.Client
	if a.Elastic != nil {
		esClient = a.Elastic.Client
	}

	source := NewSource(userdata.NewPostgresStore(a.Postgres.GetDB()), rdb, cfg, log)
	a.Service = NewService(source, NewArchive(esClient, cfg), obs, cfg, log)
	return a, nil
}

// NewSource fans out to the fetcher and puts the Redis cache in front of it
// when a client is given and scoring.cache_ttl is positive.
func NewSource(f userdata.Fetcher, rdb redis.Cmdable, cfg *config.Config, log logger.Logger) userdata.Source {
	var source userdata.Source = userdata.NewFanOut(f, Limits(cfg))
	if rdb != nil && cfg.Scoring.CacheTTL > 0 {
		source = userdata.NewCachedSource(source, rdb, config.GetDuration(cfg.Scoring.CacheTTL), log)
	}
	return source
}

// NewArchive returns the Elasticsearch archive when history is enabled.
// A nil Archive turns archiving off.
func NewArchive(es *elasticsearch.Client, cfg *config.Config) history.Archive {
	if !cfg.History.Enabled || es == nil {
		return nil
	}
	return history.NewElasticArchive(es, cfg.History.Index)
}

func NewService(source userdata.Source, archive history.Archive, obs *observability.Observability, cfg *config.Config, log logger.Logger) *predictor.Service {
	opts := []predictor.Option{
		predictor.WithEngine(careerfit.NewEngine(careerfit.WithTopN(cfg.Scoring.TopN))),
		predictor.WithFetchTimeout(config.GetDuration(cfg.Scoring.FetchTimeout)),
	}
	if archive != nil {
		opts = append(opts, predictor.WithArchive(archive))
	}
	if obs != nil {
		opts = append(opts, predictor.WithObservability(obs))
	}
	return predictor.NewService(source, log, opts...)
}

func Limits(cfg *config.Config) userdata.Limits {
	return userdata.Limits{
		Activities:            cfg.Scoring.ActivityLimit,
		TestResults:           cfg.Scoring.TestResultLimit,
		CommunicationSessions: cfg.Scoring.SessionLimit,
	}
}

// Pingers lists the connected backends for readiness checks.
func (a *App) Pingers() []database.Pinger {
	var out []database.Pinger
	if a.Postgres != nil {
		out = append(out, a.Postgres)
	}
	if a.Redis != nil {
		out = append(out, a.Redis)
	}
	if a.Elastic != nil {
		out = append(out, a.Elastic)
	}
	return out
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("Error closing Redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.Postgres != nil {
		if err := a.Postgres.Close(); err != nil {
			a.Logger.Warn("Error closing PostgreSQL", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.Obs != nil {
		a.Obs.Shutdown()
	}
}

// RetryWithBackoff runs operation until it succeeds, doubling the delay
// between attempts. It gives up early when ctx is cancelled.
func RetryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled: %w", operationName, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
