package device

import (
	"os"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/screen1d"
	"periph.io/x/devices/v3/ssd1306"

	"github.com/vortexhw/vortexpanel/internal/charlcd"
	"github.com/vortexhw/vortexpanel/internal/config"
	"github.com/vortexhw/vortexpanel/internal/matrix"
	"github.com/vortexhw/vortexpanel/internal/oled"
)

// Set holds the three opened display devices.
type Set struct {
	Matrix matrix.Driver
	LCD    charlcd.Device
	Graph  display.Drawer
}

// ConsoleSet returns a Set backed entirely by console stand-ins, for the
// simulator.
func ConsoleSet() *Set {
	return &Set{
		Matrix: NewConsoleMatrix(os.Stdout),
		LCD:    NewConsoleLCD(),
		Graph:  screen1d.New(&screen1d.Opts{X: oled.Width}),
	}
}

// Open brings up all three displays. A device that fails to open is
// replaced with a console stand-in; presentation must keep running on
// whatever hardware is actually present.
func Open(cfg *config.Config, log zerolog.Logger) *Set {
	s := &Set{}

	if port, err := spireg.Open(cfg.Bus.SPI); err != nil {
		log.Warn().Err(err).Msg("no SPI port, matrix prints to the console")
		s.Matrix = NewConsoleMatrix(os.Stdout)
	} else if drv, err := NewMax7219(port); err != nil {
		log.Warn().Err(err).Msg("matrix chain init failed, printing to the console")
		port.Close()
		s.Matrix = NewConsoleMatrix(os.Stdout)
	} else {
		if err := drv.SetIntensity(cfg.Matrix.Intensity); err != nil {
			log.Warn().Err(err).Msg("matrix intensity not applied")
		}
		s.Matrix = drv
	}

	bus, err := i2creg.Open(cfg.Bus.I2C)
	if err != nil {
		log.Warn().Err(err).Msg("no I2C bus, character display is a console stand-in")
		s.LCD = NewConsoleLCD()
		s.Graph = screen1d.New(&screen1d.Opts{X: oled.Width})
		return s
	}

	if lcd, err := NewLCD(bus, cfg.Bus.LCDAddr); err != nil {
		log.Warn().Err(err).Msg("character display init failed, using console stand-in")
		s.LCD = NewConsoleLCD()
	} else {
		s.LCD = lcd
	}

	if dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts); err != nil {
		log.Warn().Err(err).Msg("graphic panel init failed, drawing to the console")
		s.Graph = screen1d.New(&screen1d.Opts{X: oled.Width})
	} else {
		s.Graph = dev
	}

	return s
}
