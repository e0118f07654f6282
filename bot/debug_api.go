package bot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"milestonebot/domain/interfaces"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const maxDebugLeaderboardSize = 100

// Broadcaster triggers the daily leaderboard post on demand
type Broadcaster interface {
	RunOnce(ctx context.Context) error
}

// DebugResponse is the JSON envelope returned by every debug endpoint
type DebugResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// DebugAPI is the internal ops API, bound to loopback only
type DebugAPI struct {
	ledger      interfaces.LedgerService
	broadcaster Broadcaster
	defaultSize int
	server      *http.Server
}

// NewDebugAPI creates the ops API
func NewDebugAPI(ledger interfaces.LedgerService, broadcaster Broadcaster, defaultSize int) *DebugAPI {
	return &DebugAPI{
		ledger:      ledger,
		broadcaster: broadcaster,
		defaultSize: defaultSize,
	}
}

// Router builds the gin engine with all debug routes
func (a *DebugAPI) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", a.handleHealth)
	router.GET("/leaderboard", a.handleLeaderboard)
	router.POST("/broadcast", a.handleBroadcast)

	return router
}

// Start serves the API on 127.0.0.1:port in the background. Port 0 disables it.
func (a *DebugAPI) Start(port int) error {
	if port == 0 {
		log.Info("Debug API disabled")
		return nil
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.server = &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Debug API server error: %v", err)
		}
	}()

	log.Infof("Debug API started on %s", addr)
	return nil
}

// Shutdown stops the server if it was started
func (a *DebugAPI) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *DebugAPI) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, DebugResponse{Success: true, Message: "OK"})
}

func (a *DebugAPI) handleLeaderboard(c *gin.Context) {
	n := a.defaultSize
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxDebugLeaderboardSize {
			c.JSON(http.StatusBadRequest, DebugResponse{
				Error: fmt.Sprintf("n must be an integer between 0 and %d", maxDebugLeaderboardSize),
			})
			return
		}
		n = parsed
	}

	players, err := a.ledger.LeaderboardTopN(c.Request.Context(), n)
	if err != nil {
		log.WithError(err).Error("Debug leaderboard read failed")
		c.JSON(http.StatusServiceUnavailable, DebugResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DebugResponse{Success: true, Data: players})
}

func (a *DebugAPI) handleBroadcast(c *gin.Context) {
	if a.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, DebugResponse{Error: "leaderboard worker not running"})
		return
	}

	if err := a.broadcaster.RunOnce(c.Request.Context()); err != nil {
		log.WithError(err).Error("Manual leaderboard broadcast failed")
		c.JSON(http.StatusBadGateway, DebugResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DebugResponse{Success: true, Message: "Leaderboard broadcast posted"})
}

// requestLogger logs each request through logrus
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("Debug API request")
	}
}
