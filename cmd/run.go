package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/rackview/internal/app"
	"github.com/metal-toolbox/rackview/internal/httpapi"
	"github.com/metal-toolbox/rackview/internal/metrics"
	"github.com/metal-toolbox/rackview/internal/model"
	"github.com/metal-toolbox/rackview/internal/version"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run the rackview service to serve rack elevations and chassis slot grids over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) {
	rv, termCh, err := app.New(storeParam, cfgFile, logLevel)
	if err != nil {
		logrus.Fatal(err)
	}

	// serve metrics endpoint
	metrics.ListenAndServe(rv.Config.MetricsAddress, rv.Logger)
	version.ExportBuildInfoMetric()

	ctx, otelShutdown := otelinit.InitOpenTelemetry(ctx, model.AppName)
	defer otelShutdown(ctx)

	repository, err := initStore(ctx, rv)
	if err != nil {
		rv.Logger.Fatal(err)
	}

	handler := httpapi.NewHandler(rv.Logger, repository, rv.Builder())

	server := &http.Server{
		Addr:              rv.Config.ListenAddress,
		Handler:           handler.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// routine listens for termination signal and shuts down the server
	go func() {
		<-termCh
		rv.Logger.Info("got TERM signal, exiting...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			rv.Logger.WithError(err).Warn("server shutdown")
		}
	}()

	rv.Logger.WithFields(logrus.Fields{
		"address":   rv.Config.ListenAddress,
		"storeKind": rv.Config.StoreKind,
	}).Info("rackview listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		rv.Logger.Fatal(err)
	}
}

func init() {
	rootCmd.AddCommand(cmdRun)
}
