package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/hiveden/sysmetrics/internal/api"
	"github.com/hiveden/sysmetrics/internal/defaults"
	"github.com/hiveden/sysmetrics/internal/sysmetrics"
)

func main() {
	viper.SetEnvPrefix("SYSMETRICS")
	viper.AutomaticEnv()
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("probe_timeout", defaults.ProbeTimeout)
	viper.SetDefault("disk_path", "")
	viper.SetDefault("gin_mode", gin.ReleaseMode)

	gin.SetMode(viper.GetString("gin_mode"))

	provider := sysmetrics.NewProvider(
		sysmetrics.WithDiskPath(viper.GetString("disk_path")),
		sysmetrics.WithProbeTimeout(viper.GetDuration("probe_timeout")),
	)
	r := api.NewRouter(api.NewAPIHandler(provider))

	srv := &http.Server{
		Addr:              viper.GetString("listen_addr"),
		Handler:           r,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("serving host facts", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to run server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaults.ServerShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
}
