package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/config"
	"github.com/wms-platform/wms-web/pkg/metrics"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// pollState remembers the outcome of the latest dashboard poll
type pollState struct {
	mu   sync.RWMutex
	at   time.Time
	err  error
	seen bool
}

func (p *pollState) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.at = time.Now()
	p.err = err
	p.seen = true
}

// check fails until a poll has succeeded
func (p *pollState) check() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch {
	case !p.seen:
		return errors.New("no poll completed yet")
	case p.err != nil:
		return fmt.Errorf("last poll at %s failed: %w", p.at.Format(time.RFC3339), p.err)
	}
	return nil
}

// newMonitorRouter serves health, readiness and Prometheus metrics
func newMonitorRouter(m *metrics.Metrics, ready func() error, origins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": config.AppName})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not ready",
				"service": config.AppName,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": config.AppName})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "path": c.Request.URL.Path})
	})
	return router
}

// exportStats publishes the dashboard counters as gauges
func exportStats(m *metrics.Metrics, s *wmsapi.DashboardStats) {
	m.SetDashboardStat("warehouses", float64(s.TotalWarehouses))
	m.SetDashboardStat("products", float64(s.TotalProducts))
	m.SetDashboardStat("inventory_units", float64(s.TotalInventory))
	m.SetDashboardStat("inventory_value", s.TotalValue)
	m.SetDashboardStat("today_inbound", float64(s.TodayInbound))
	m.SetDashboardStat("today_outbound", float64(s.TodayOutbound))
	m.SetDashboardStat("pending_inbound", float64(s.PendingInbound))
	m.SetDashboardStat("pending_outbound", float64(s.PendingOutbound))
	m.SetDashboardStat("low_stock_alerts", float64(s.LowStockAlerts))
	m.SetDashboardStat("expiring_alerts", float64(s.ExpiringAlerts))
}

type watchFlags struct {
	addr     string
	interval time.Duration
	count    int
}

func newWatchCommand(a *App) *cobra.Command {
	var f watchFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll dashboard counters and serve them as Prometheus metrics",
		Long: `Poll the dashboard counters and export them as gauges on /metrics, next to
/health and /ready. Runs until interrupted, or for --count polls.`,
		Args: cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			if f.addr == "" {
				f.addr = a.cfg.Metrics.Addr
			}
			if f.interval <= 0 {
				f.interval = a.cfg.Metrics.PollInterval
			}
			return a.watch(ctx, f)
		}),
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address for /metrics (default from config)")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "time between polls (default from config)")
	cmd.Flags().IntVar(&f.count, "count", 0, "stop after this many polls, 0 runs until interrupted")
	return cmd
}

func (a *App) watch(ctx context.Context, f watchFlags) error {
	var state pollState
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", f.addr, err)
	}
	srv := &http.Server{
		Handler:           newMonitorRouter(a.metrics, state.check, a.cfg.Metrics.AllowOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.WithError(err).Error("Metrics server stopped")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Warn("Failed to shutdown metrics server")
		}
	}()
	fmt.Fprintf(a.Err, "Serving metrics on http://%s/metrics\n", ln.Addr())

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for polls := 1; ; polls++ {
		stats, err := a.api.Dashboard.Stats(ctx)
		state.set(err)
		a.metrics.SetPollResult(err == nil)
		if err == nil && stats != nil {
			exportStats(a.metrics, stats)
			a.logger.Debug("Dashboard polled", "poll", polls)
		}
		if a.signedOut.Load() {
			return err
		}
		if f.count > 0 && polls >= f.count {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
