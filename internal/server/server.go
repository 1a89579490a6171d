package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/logger"
	"tradify-bot/internal/store"
	"tradify-bot/internal/types"
)

// Server is the thin HTTP facade over the running engine: position and
// chart inspection plus runtime config updates. All trading decisions
// stay in the engine; handlers only map requests and responses.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	engine     interfaces.Engine
	broker     interfaces.Broker
	scorer     interfaces.Scorer
	settings   *store.Settings
	cfg        *store.Config
}

// New builds the server and registers routes.
func New(cfg *store.Config, eng interfaces.Engine, brk interfaces.Broker, sc interfaces.Scorer, settings *store.Settings) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	s := &Server{
		router:   router,
		engine:   eng,
		broker:   brk,
		scorer:   sc,
		settings: settings,
		cfg:      cfg,
	}

	api := router.Group("/api")
	{
		api.GET("/trades", s.handleTrades)
		api.GET("/status", s.handleStatus)
		api.GET("/chart/:symbol", s.handleChart)
		api.POST("/config", s.handleConfig)
	}
	return s
}

// Start serves until ListenAndServe returns.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the listener down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleTrades(c *gin.Context) {
	positions, err := s.broker.OpenPositions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"statusCode": http.StatusInternalServerError,
			"error":      "Failed to retrieve positions",
		})
		return
	}

	trades := make([]gin.H, 0, len(positions))
	for _, pos := range positions {
		direction := "long"
		if pos.Direction == types.Sell {
			direction = "short"
		}
		trades = append(trades, gin.H{
			"symbol":     pos.Symbol,
			"direction":  direction,
			"entryPrice": pos.EntryPrice,
			"lotSize":    pos.Volume,
			"profitLoss": pos.Profit,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Trades fetched successfully",
		"statusCode": http.StatusOK,
		"data":       trades,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":       s.cfg.Mode,
		"lastAction": s.engine.LastAction(),
		"config":     s.settings.Snapshot(),
		"model":      s.scorer.Version(),
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChart(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.broker.PriceBars(c.Request.Context(), symbol, s.cfg.BarCount)
	if err != nil || len(bars) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      fmt.Sprintf("No chart data available for symbol '%s'", symbol),
			"statusCode": http.StatusNotFound,
		})
		return
	}

	chart := make([]gin.H, 0, len(bars))
	for _, b := range bars {
		chart = append(chart, gin.H{
			"time":  b.Time().Format(time.RFC3339),
			"open":  b.Open,
			"high":  b.High,
			"low":   b.Low,
			"close": b.Close,
		})
	}
	c.JSON(http.StatusOK, chart)
}

type configRequest struct {
	LotSize     *float64 `json:"lot_size"`
	MLThreshold *float64 `json:"ml_threshold"`
}

func (s *Server) handleConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.settings.Update(req.LotSize, req.MLThreshold); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info(c.Request.Context(), "Runtime config updated",
		"lot_size", req.LotSize, "ml_threshold", req.MLThreshold)
	c.JSON(http.StatusOK, gin.H{"status": "success", "config": s.settings.Snapshot()})
}
