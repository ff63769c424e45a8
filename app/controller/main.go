package main

import (
	gocontext "context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ingest/pkg/broker"
	"ingest/pkg/license"
	"ingest/pkg/metrics"
	"ingest/pkg/pipeline"
	"ingest/pkg/store"
	"ingest/pkg/util/config"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const (
	storeConfigKey  = "store"
	brokerConfigKey = "broker"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var configFile string
	command := &cobra.Command{
		Use:          "ingest-controller",
		Short:        "ingest-controller serves the ingest pipelines API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				config.SetConfigFile(configFile)
			}
			return run()
		},
	}
	command.Flags().StringVarP(&configFile, "config", "c", "", fmt.Sprintf("path to a JSON config file, defaults to $%s", config.EnvConfigFile))
	return command
}

func run() error {
	if err := config.ReadInConfig(); err != nil {
		return errors.Wrap(err, "cannot read config")
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if err := context.ConfigureLogger(conf.LogLevel, conf.LogFormat); err != nil {
		return err
	}
	ctx := context.Background()

	s, err := store.NewFromConfig(storeConfigKey)
	if err != nil {
		return errors.Wrap(err, "failed to instantiate store")
	}
	b, err := broker.NewFromConfig(ctx, brokerConfigKey)
	if err != nil {
		return errors.Wrap(err, "failed to instantiate broker")
	}
	defer b.Close()

	svc, err := pipeline.New(s, b)
	if err != nil {
		return errors.Wrap(err, "failed to instantiate pipeline service")
	}
	checker, err := license.NewChecker(s, conf.License)
	if err != nil {
		return errors.Wrap(err, "failed to instantiate license checker")
	}
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return errors.Wrap(err, "failed to register metrics")
	}

	e := newServer(svc, checker, prometheus.DefaultGatherer)

	// Serve until interrupted
	errc := make(chan error, 1)
	go func() {
		e.Logger.Infof("http server started on :%d", conf.Port)
		errc <- e.Start(fmt.Sprintf(":%d", conf.Port))
	}()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case s := <-sig:
		ctx.Logger().Infof("received %s, shutting down", s)
	}
	shutdownCtx, cancel := gocontext.WithTimeout(gocontext.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
