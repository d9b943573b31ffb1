// Package device binds the controller's abstract devices to hardware: the
// serial command link, the MAX7219 matrix chain, the HD44780 character
// display, and the SSD1306 graphic panel. Every constructor degrades to a
// console stand-in rather than failing the process.
package device

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial.v1"

	"github.com/vortexhw/vortexpanel/internal/proto"
)

var ErrNoSerialPortFound = errors.New("didn't find any available serial port")

// DefaultSerialMode matches the host application's link settings.
var DefaultSerialMode = &serial.Mode{
	BaudRate: 115200,
	Parity:   serial.NoParity,
	DataBits: 8,
	StopBits: serial.OneStopBit,
}

// LineSource delivers assembled command lines to the controller.
type LineSource interface {
	Lines() <-chan string
	Run(ctx context.Context) error
}

// SerialSource reads the serial port, assembles bytes into bounded lines
// and queues them. When the controller falls behind, the oldest queued
// line is dropped first; the protocol is snapshot-based, so a fresher
// command is always the better one to keep.
type SerialSource struct {
	port  serial.Port
	log   zerolog.Logger
	lines chan string
}

// OpenSerial opens the named port, or scans for the first port that opens
// when name is empty.
func OpenSerial(name string, baud int, log zerolog.Logger) (*SerialSource, error) {
	mode := *DefaultSerialMode
	if baud > 0 {
		mode.BaudRate = baud
	}
	if name != "" {
		port, err := serial.Open(name, &mode)
		if err != nil {
			return nil, err
		}
		return newSerialSource(port, log), nil
	}
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		port, err := serial.Open(n, &mode)
		if err != nil {
			continue
		}
		log.Info().Str("port", n).Msg("serial port opened")
		return newSerialSource(port, log), nil
	}
	return nil, ErrNoSerialPortFound
}

func newSerialSource(port serial.Port, log zerolog.Logger) *SerialSource {
	return &SerialSource{
		port:  port,
		log:   log,
		lines: make(chan string, 64),
	}
}

func (s *SerialSource) Lines() <-chan string { return s.lines }

// Run reads until the context is cancelled. Read errors back off briefly
// and retry; an unplugged adapter should not kill the controller.
func (s *SerialSource) Run(ctx context.Context) error {
	defer s.port.Close()
	asm := proto.NewLineAssembler(proto.DefaultMaxLine)
	buf := make([]byte, 64)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := s.port.Read(buf)
		if err != nil {
			s.log.Debug().Err(err).Msg("serial read failed")
			time.Sleep(50 * time.Millisecond)
			continue
		}
		s.enqueue(asm.Feed(buf[:n]))
	}
}

func (s *SerialSource) enqueue(lines []string) {
	for _, line := range lines {
		select {
		case s.lines <- line:
		default:
			select {
			case stale := <-s.lines:
				s.log.Debug().Str("line", stale).Msg("dropped stale command")
			default:
			}
			select {
			case s.lines <- line:
			default:
			}
		}
	}
}

// ReaderSource feeds lines from an io.Reader, used by the simulator to
// accept commands on stdin.
type ReaderSource struct {
	r     io.Reader
	lines chan string
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r, lines: make(chan string, 64)}
}

func (s *ReaderSource) Lines() <-chan string { return s.lines }

func (s *ReaderSource) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		select {
		case s.lines <- line:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}
