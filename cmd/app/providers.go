package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
	"github.com/yanqian/funzone-site/internal/domain/contact"
	"github.com/yanqian/funzone-site/internal/domain/gallery"
	"github.com/yanqian/funzone-site/internal/infra/catalogrepo"
	"github.com/yanqian/funzone-site/internal/infra/config"
	"github.com/yanqian/funzone-site/internal/infra/contactstore"
	"github.com/yanqian/funzone-site/internal/infra/gallerystore"
	"github.com/yanqian/funzone-site/internal/infra/telemetry"
)

func provideContactConfig(cfg *config.Config) contact.Config {
	return contact.Config{
		DefaultMessage: cfg.Contact.DefaultMessage,
		EmailDomain:    cfg.Contact.EmailDomain,
		TopChannels:    cfg.Contact.TopChannels,
	}
}

func provideTelemetry(cfg *config.Config, logger *slog.Logger) (*telemetry.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		ServiceName:  cfg.Telemetry.ServiceName,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		SampleRatio:  cfg.Telemetry.SampleRatio,
	}, logger)
}

func provideCatalogRepository(cfg *config.Config, logger *slog.Logger) (catalog.Repository, error) {
	fallback, err := catalogrepo.NewSeedRepository()
	if err != nil {
		return nil, err
	}
	var repo catalog.Repository = fallback
	if pgRepo := providePostgresCatalog(cfg, logger); pgRepo != nil {
		repo = pgRepo
	}
	auditSchedules(repo, logger)
	return repo, nil
}

func providePostgresCatalog(cfg *config.Config, logger *slog.Logger) catalog.Repository {
	dsn := strings.TrimSpace(cfg.Catalog.Postgres.DSN)
	if dsn == "" {
		logger.Info("catalog postgres dsn not set, using embedded catalog")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using embedded catalog", "error", err)
		return nil
	}
	if cfg.Catalog.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Catalog.Postgres.MaxConns
	}
	if cfg.Catalog.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Catalog.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using embedded catalog", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using embedded catalog", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("catalog postgres repository enabled")
	return catalogrepo.NewPostgresRepository(pool)
}

// auditSchedules logs branches whose hours cannot be fully resolved.
func auditSchedules(repo catalog.Repository, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	branches, err := repo.Branches(ctx)
	if err != nil {
		logger.Warn("schedule audit skipped", "error", err)
		return
	}
	for slug, problem := range catalog.CheckSchedules(branches) {
		logger.Warn("branch schedule has problems", "branch", slug, "error", problem)
	}
}

func provideContactStore(cfg *config.Config, logger *slog.Logger) contact.Store {
	if cfg.Contact.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg.Contact.Redis.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return contactstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return contactstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("contact valkey store enabled", "addr", cfg.Contact.Redis.Addr)
			return contactstore.NewValkeyStore(client, cfg.Contact.Redis.Prefix)
		}
	}
	return contactstore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideGalleryResolver(cfg *config.Config, logger *slog.Logger) gallery.URLResolver {
	static := gallerystore.NewStaticResolver(cfg.Gallery.PublicBaseURL)
	s3 := cfg.Gallery.S3
	if !s3.Enabled {
		return static
	}
	resolver, err := gallerystore.NewS3Resolver(gallerystore.S3Options{
		Endpoint:   s3.Endpoint,
		AccessKey:  s3.AccessKey,
		SecretKey:  s3.SecretKey,
		Bucket:     s3.Bucket,
		Region:     s3.Region,
		PresignTTL: s3.PresignTTL,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize gallery bucket, using static urls", "error", err)
		return static
	}
	logger.Info("gallery presigned urls enabled", "bucket", s3.Bucket)
	return resolver
}
