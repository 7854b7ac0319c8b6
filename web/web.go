// Package web provides the HTTP server of the dashboard API: routing,
// session middleware and lifecycle management.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/MarcosLesca/dashboard-api/config"
	"github.com/MarcosLesca/dashboard-api/logger"
	"github.com/MarcosLesca/dashboard-api/util/common"
	"github.com/MarcosLesca/dashboard-api/util/random"
	"github.com/MarcosLesca/dashboard-api/web/controller"
	"github.com/MarcosLesca/dashboard-api/web/middleware"
	"github.com/MarcosLesca/dashboard-api/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Server is the dashboard API web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	settings *config.Settings

	auth       *controller.AuthController
	dashboards *controller.DashboardController
	widgets    *controller.WidgetController
	status     *controller.ServerController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer(settings *config.Settings) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{settings: settings, ctx: ctx, cancel: cancel}
}

// sessionStore builds the session store: Redis-backed when a Redis address
// is configured, signed cookies otherwise.
func (s *Server) sessionStore() sessions.Store {
	secret := s.settings.SessionSecret
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("no session secret configured, sessions will not survive a restart")
	}

	var store sessions.Store
	if s.settings.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     s.settings.RedisAddr,
			Password: s.settings.RedisPassword,
			DB:       s.settings.RedisDB,
		})
		store = session.NewRedisStore(client, []byte(secret))
		logger.Info("using redis session store at", s.settings.RedisAddr)
	} else {
		store = cookie.NewStore([]byte(secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.settings.SessionMaxAge * 60,
		HttpOnly: true,
	})
	return store
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if s.settings.Domain != "" {
		engine.Use(middleware.DomainValidator(s.settings.Domain))
	}

	engine.Use(middleware.RequestId())
	engine.Use(middleware.CountRequests())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(config.GetName(), s.sessionStore()))

	api := engine.Group("/api")
	s.auth = controller.NewAuthController(api.Group("/auth"), s.settings.SessionMaxAge)
	s.dashboards = controller.NewDashboardController(api.Group("/dashboards"))
	s.widgets = controller.NewWidgetController(api.Group("/widgets"))
	s.status = controller.NewServerController(api.Group("/status"))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if s.settings.Port <= 0 || s.settings.Port > 65535 {
		return common.NewErrorf("invalid port: %d", s.settings.Port)
	}

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(s.settings.Listen, strconv.Itoa(s.settings.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		defer common.Recover("web server")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server error:", err)
		}
	}()

	logger.Infof("%s %s listening on %s", config.GetName(), config.GetVersion(), listenAddr)
	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		// Shutdown closes the listener; ignore the duplicate close error.
		_ = s.listener.Close()
	}
	return err
}
