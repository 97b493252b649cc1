package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Store     string    `json:"store"`
	DB        string    `json:"db,omitempty"`
	Pool      string    `json:"pool,omitempty"`
	Cache     string    `json:"cache,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       string
	db          *sql.DB
	pool        *pgxpool.Pool
	cache       *redis.Client
}

// NewHealthHandler reports on the given dependencies. db is the handle the
// repositories query through, pool the one migrations use. Any of them may
// be nil when the service runs without it.
func NewHealthHandler(serviceName, version, store string, db *sql.DB, pool *pgxpool.Pool, cache *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
		db:          db,
		pool:        pool,
		cache:       cache,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = probe(c.Request.Context(), h.db.PingContext)
	}

	poolStatus := "disabled"
	if h.pool != nil {
		poolStatus = probe(c.Request.Context(), h.pool.Ping)
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = probe(c.Request.Context(), func(ctx context.Context) error {
			return h.cache.Ping(ctx).Err()
		})
	}

	status := "healthy"
	if dbStatus == "down" || poolStatus == "down" || cacheStatus == "down" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Store:     h.store,
		DB:        dbStatus,
		Pool:      poolStatus,
		Cache:     cacheStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

func probe(ctx context.Context, ping func(context.Context) error) string {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}
