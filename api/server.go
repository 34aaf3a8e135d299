package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/db/sqlc"
	"github.com/saeidalz13/battleship-backend/internal/config"
	"github.com/saeidalz13/battleship-backend/internal/logs"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

const (
	StageProd = config.StageProd
	StageDev  = config.StageDev
)

type Server struct {
	port      int
	stage     string
	rules     mb.Rules
	analytics *sqlc.AnalyticsManager

	SessionManager mc.SessionManager
	GameManager    mb.GameManager

	ctx    context.Context
	cancel context.CancelFunc
	engine *gin.Engine
	srv    *http.Server
}

type Option func(*Server) error

// NewServer wires the websocket endpoint and the HTTP routes. An
// invalid option is a programming error and panics.
func NewServer(sessionManager mc.SessionManager, gameManager mb.GameManager, optFuncs ...Option) *Server {
	server := Server{
		port:           config.DefaultPort,
		stage:          StageDev,
		rules:          mb.DefaultRules(),
		SessionManager: sessionManager,
		GameManager:    gameManager,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}

	if server.stage == StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	server.ctx, server.cancel = context.WithCancel(context.Background())
	rp := NewRequestProcessor(server.ctx, sessionManager, gameManager, server.analytics, server.rules)

	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog())
	engine.GET("/battleship", gin.WrapH(rp))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/stats", server.handleStats)

	server.engine = engine
	server.srv = &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", server.port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// WithRules sets the rules of games created without a grid size.
func WithRules(rules mb.Rules) Option {
	return func(s *Server) error {
		if err := rules.Validate(); err != nil {
			return err
		}
		s.rules = rules
		return nil
	}
}

func WithAnalytics(analytics *sqlc.AnalyticsManager) Option {
	return func(s *Server) error {
		s.analytics = analytics
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start blocks until the server stops. A shutdown is not an error.
func (s *Server) Start() error {
	logs.Info("listening", zap.String("addr", s.srv.Addr), zap.String("stage", s.stage))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and closes the running sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.srv.Shutdown(ctx)
}

type statsResponse struct {
	ActiveGames    int                      `json:"active_games"`
	ActiveSessions int                      `json:"active_sessions"`
	Analytics      *sqlc.GameServerAnalytic `json:"analytics,omitempty"`
}

func (s *Server) handleStats(c *gin.Context) {
	resp := statsResponse{
		ActiveGames:    s.GameManager.CountGames(),
		ActiveSessions: s.SessionManager.CountSessions(),
	}

	if s.analytics != nil {
		stats, err := s.analytics.GetServerStats(c.Request.Context())
		if err != nil {
			logs.Warn("failed to fetch analytics", zap.Error(err))
		} else {
			resp.Analytics = &stats
		}
	}
	c.JSON(http.StatusOK, resp)
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		logs.Info("access",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIp", c.ClientIP()),
		)
	}
}
