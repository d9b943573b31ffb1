package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/vortexhw/vortexpanel/internal/config"
	"github.com/vortexhw/vortexpanel/internal/controller"
	"github.com/vortexhw/vortexpanel/internal/device"
	"github.com/vortexhw/vortexpanel/internal/web"
)

func main() {
	var (
		configPath = flag.String("config", "panel.yaml", "path to panel.yaml")
		serialPort = flag.String("port", "", "serial port (empty scans for one)")
		addr       = flag.String("addr", "", "mirror server address (overrides config)")
		simOnly    = flag.Bool("sim-only", false, "force console devices (no hardware output)")
		level      = flag.String("level", "", "log level (overrides config)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
		cfg.Web.Enabled = true
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level; keeping default")
	}

	var devs *device.Set
	if *simOnly {
		devs = device.ConsoleSet()
	} else {
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed; console fallbacks engage")
		}
		devs = device.Open(cfg, log.Logger)
	}

	ctrl := controller.New(controller.Options{
		Log:    log.Logger,
		Layout: cfg.Layout(),
		LCD:    devs.LCD,
		Matrix: devs.Matrix,
		Graph:  devs.Graph,
	})
	ctrl.Splash()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Web.Enabled {
		srv := web.NewServer(cfg.Web.Addr, ctrl.Snapshot, log.Logger)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error().Err(err).Msg("mirror server crashed")
			}
		}()
	}

	src, err := device.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("no serial link; reading commands from stdin")
		rdr := device.NewReaderSource(os.Stdin)
		go rdr.Run(ctx)
		runController(ctx, ctrl, rdr.Lines())
		return
	}
	go src.Run(ctx)
	runController(ctx, ctrl, src.Lines())
}

func runController(ctx context.Context, ctrl *controller.Controller, lines <-chan string) {
	if err := ctrl.Run(ctx, lines); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("controller stopped")
	}
	log.Info().Msg("shutting down")
}
