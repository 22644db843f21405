package server

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are passed to the AppGenerator.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartConfig holds the values the start command uses when no flag
// overrides them.
type StartConfig struct {
	Bind    string
	Debug   bool
	Metrics string
}

func parseStartFlags(defaults StartConfig, args []string) (StartConfig, error) {
	conf := defaults
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&conf.Bind, flagBind, defaults.Bind, "address server listens on")
	startFlags.BoolVar(&conf.Debug, flagDebug, defaults.Debug, "call stack returned on error")
	startFlags.StringVar(&conf.Metrics, flagMetrics, defaults.Metrics, "address prometheus metrics are served on, empty to disable")
	if err := startFlags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if conf.Bind == "" {
		return conf, errors.Wrap(errors.ErrEmpty, "bind address")
	}
	return conf, nil
}

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, defaults StartConfig, args []string) error {
	conf, err := parseStartFlags(defaults, args)
	if err != nil {
		return err
	}

	app, err := gen(&Options{Home: home, Logger: logger, Debug: conf.Debug})
	if err != nil {
		return err
	}

	if conf.Metrics != "" {
		startMetrics(conf.Metrics, logger.With("module", "metrics"))
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "starting server: %s", err)
	}

	// Wait until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info("Stopping ABCI app", "signal", s.String())
	return svr.Stop()
}

func startMetrics(addr string, logger log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		logger.Info("Metrics listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
}
