package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/config"
	httpapi "github.com/shiftboard/shiftboard-backend/internal/api/http"
	"github.com/shiftboard/shiftboard-backend/internal/api/http/middleware"
	clienthttp "github.com/shiftboard/shiftboard-backend/internal/clients/http"
	clientsvc "github.com/shiftboard/shiftboard-backend/internal/clients/service"
	employeecache "github.com/shiftboard/shiftboard-backend/internal/employees/cache"
	employeehttp "github.com/shiftboard/shiftboard-backend/internal/employees/http"
	employeesvc "github.com/shiftboard/shiftboard-backend/internal/employees/service"
	projecthttp "github.com/shiftboard/shiftboard-backend/internal/projects/http"
	projectsvc "github.com/shiftboard/shiftboard-backend/internal/projects/service"
	schedulehttp "github.com/shiftboard/shiftboard-backend/internal/schedule/http"
)

type RouterDeps struct {
	Config *config.Config
	Log    *logrus.Entry
	Stores *Stores
	Redis  *redis.Client
}

// NewEmployeeService wires the employee service with the Redis cache when
// one is available.
func NewEmployeeService(st *Stores, rdb *redis.Client, cfg config.RedisConfig, log *logrus.Entry) *employeesvc.EmployeeService {
	var cache employeesvc.Cache
	if rdb != nil {
		cache = employeecache.NewEmployeeCache(rdb, cfg.CacheTTL)
	}
	return employeesvc.NewEmployeeService(st.Employees, cache, log)
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(cfg.App.Name, cfg.App.Version, dep.Stores.Driver, dep.Stores.DB(), dep.Stores.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	clients := clienthttp.New(clientsvc.NewClientService(dep.Stores.Clients), dep.Log)
	projects := projecthttp.New(projectsvc.NewProjectService(dep.Stores.Projects), dep.Log)
	employees := employeehttp.New(NewEmployeeService(dep.Stores, dep.Redis, cfg.Redis, dep.Log), dep.Log)
	schedule := schedulehttp.New(dep.Log)

	limit := middleware.RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	timeout := middleware.TimeoutMiddleware(cfg.Server.RequestTimeout)

	for _, prefix := range []string{"/api", ""} {
		g := r.Group(prefix, limit, timeout)
		clients.Register(g.Group("/clients"))
		projects.Register(g.Group("/projects"))
		employees.Register(g.Group("/employees"))
		schedule.Register(g.Group("/schedule"))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
