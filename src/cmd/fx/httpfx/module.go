package httpfx

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/config"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/metrics"
	httpapi "github.com/jackyeh168/club_ledger/src/internal/interfaces/http"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const readHeaderTimeout = 10 * time.Second

var Module = fx.Options(
	fx.Provide(provideHandlers, provideRouter),
	fx.Invoke(startServer),
)

func provideHandlers(uc httpapi.UseCases, logger *slog.Logger, m *metrics.LedgerMetrics) *httpapi.Handlers {
	return httpapi.NewHandlers(uc, logger, m)
}

func provideRouter(cfg config.Config, h *httpapi.Handlers, logger *slog.Logger, gatherer prometheus.Gatherer) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return httpapi.NewRouter(h, logger, gatherer)
}

func startServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("http server listening", "addr", ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down http server")
			return srv.Shutdown(ctx)
		},
	})
}
