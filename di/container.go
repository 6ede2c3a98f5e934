package di

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"dam-dash/config"
	"dam-dash/dao"
	mongodao "dam-dash/dao/mongo"
	"dam-dash/dao/redis"
	sqlitedao "dam-dash/dao/sqlite"
	"dam-dash/db"
	"dam-dash/observability"
	"dam-dash/server"
	"dam-dash/server/handlers"
	services "dam-dash/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies.
type Container struct {
	Config               *config.Config
	ReportDao            dao.ReportDAO
	RedisClient          db.RedisClient
	ReportCacheDao       *redis.RedisReportCacheDAO
	Metrics              *observability.Metrics
	ReportShaper         *services.ReportShaper
	FilterOptionsService *services.FilterOptionsService
	CachedReportService  *services.CachedReportService
	ReportHandler        *handlers.ReportHandler
	DashboardHandler     *handlers.DashboardHandler
	HealthHandler        *handlers.HealthHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	DamDashHttpServer    *server.DamDashHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies. Metrics are passed
// in so the caller decides which registry they live in.
func NewContainer(cfg *config.Config, metrics *observability.Metrics) (*Container, error) {
	log.Printf("[Container] Initializing container - store: %s, cache enabled: %t", cfg.StoreKind, cfg.CacheEnabled)
	ctx := context.Background()
	c := &Container{Config: cfg}

	reportDao, err := c.newReportDAO(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.ReportDao = reportDao

	c.RedisClient = c.newRedisClient(ctx, cfg)
	c.ReportCacheDao = redis.NewRedisReportCacheDAO(c.RedisClient)

	c.Metrics = metrics

	c.ReportShaper = services.NewReportShaper(c.ReportDao, c.Metrics, cfg.StoreTimeout)
	c.FilterOptionsService = services.NewFilterOptionsService(c.ReportDao, c.Metrics, cfg.StoreTimeout)
	c.CachedReportService = services.NewCachedReportService(
		c.ReportShaper,
		c.FilterOptionsService,
		c.ReportCacheDao,
		c.Metrics,
		cfg.ReportsCacheTTL,
		cfg.FilterOptionsCacheTTL,
	)

	c.ReportHandler = handlers.NewReportHandler(c.CachedReportService, c.CachedReportService)
	c.DashboardHandler = handlers.NewDashboardHandler(c.CachedReportService, c.CachedReportService)
	c.HealthHandler = handlers.NewHealthHandler(c.ReportDao)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.ReportHandler, c.DashboardHandler, c.HealthHandler, c.MuxRouter)
	c.DamDashHttpServer = server.NewDamDashHttpServer(c.Router, c.MuxRouter, cfg.HTTPAddr, cfg.ShutdownTimeout)

	return c, nil
}

// Close releases the store and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("[Container] Error closing resource: %v", err)
		}
	}
	c.closers = nil
}

func (c *Container) newReportDAO(ctx context.Context, cfg *config.Config) (dao.ReportDAO, error) {
	switch cfg.StoreKind {
	case config.STORE_SQLITE:
		sqlDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		return newSQLiteReportDAO(ctx, sqlDB)
	case config.STORE_MONGO:
		client, err := db.NewMongoClient(ctx, cfg.MongoURI, cfg.StoreTimeout)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() error { return disconnectMongo(client) })
		return mongodao.NewMongoReportDAO(client, cfg.MongoDatabase, cfg.MongoCollection), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.StoreKind)
	}
}

func newSQLiteReportDAO(ctx context.Context, sqlDB *sql.DB) (*sqlitedao.SQLiteReportDAO, error) {
	reportDao := sqlitedao.NewSQLiteReportDAO(sqlDB)
	if err := reportDao.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	log.Println("[Container] Using local sqlite store")
	return reportDao, nil
}

func disconnectMongo(client *mongo.Client) error {
	return client.Disconnect(context.Background())
}

// newRedisClient falls back to the in-memory client when the cache is
// disabled or redis cannot be reached.
func (c *Container) newRedisClient(ctx context.Context, cfg *config.Config) db.RedisClient {
	if !cfg.CacheEnabled {
		log.Println("[Container] Cache disabled, using in-memory cache client")
		return db.NewMockRedisClient()
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisClient := db.NewGoRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		log.Printf("[Container] Failed to connect to Redis at %s, using in-memory cache client: %v", cfg.RedisAddress, err)
		_ = redisInternalClient.Close()
		return db.NewMockRedisClient()
	}
	c.closers = append(c.closers, redisInternalClient.Close)
	return redisClient
}
