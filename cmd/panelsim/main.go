// panelsim exercises the controller against console displays. Type
// protocol lines at stdin (MODE:4, VOL:60, TEXT:hello, ...) and watch the
// rendered output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vortexhw/vortexpanel/internal/controller"
	"github.com/vortexhw/vortexpanel/internal/device"
	"github.com/vortexhw/vortexpanel/internal/geom"
)

func main() {
	level := flag.String("level", "warn", "log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctrl := controller.New(controller.Options{
		Log:    log.Logger,
		Layout: geom.Layout{},
		LCD:    device.NewConsoleLCD(),
		Matrix: device.NewConsoleMatrix(os.Stdout),
	})
	ctrl.Splash()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := device.NewReaderSource(os.Stdin)
	go src.Run(ctx)

	// Reprint the character display whenever its content changes. Render
	// from the published snapshot; the device itself belongs to the
	// controller goroutine.
	go func() {
		tick := time.NewTicker(200 * time.Millisecond)
		defer tick.Stop()
		last := ctrl.Snapshot()
		printLCD(os.Stdout, last)
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				cur := ctrl.Snapshot()
				if cur.LCD != last.LCD || cur.Backlight != last.Backlight {
					printLCD(os.Stdout, cur)
				}
				last = cur
			}
		}
	}()

	_ = ctrl.Run(ctx, src.Lines())
}

func printLCD(w io.Writer, snap controller.Snapshot) {
	light := "on"
	if !snap.Backlight {
		light = "off"
	}
	fmt.Fprintf(w, "[%s]\n[%s]\nbacklight: %s\n", snap.LCD[0], snap.LCD[1], light)
}
