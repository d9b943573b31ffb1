package proto

// LineAssembler accumulates raw serial bytes into lines. The buffer is
// bounded: once a line exceeds the limit, further bytes are dropped until
// the next terminator, so a stuck sender cannot grow memory.
type LineAssembler struct {
	buf []byte
	max int
}

// DefaultMaxLine bounds a single command line. The longest legal command
// (FB: plus 64 hex chars) fits comfortably.
const DefaultMaxLine = 96

func NewLineAssembler(max int) *LineAssembler {
	if max <= 0 {
		max = DefaultMaxLine
	}
	return &LineAssembler{buf: make([]byte, 0, max), max: max}
}

// Feed consumes a chunk of bytes and returns any completed lines.
// Lines are trimmed of trailing CR; empty lines are not returned.
func (a *LineAssembler) Feed(data []byte) []string {
	var lines []string
	for _, c := range data {
		if c == '\n' {
			if line := trimLine(a.buf); line != "" {
				lines = append(lines, line)
			}
			a.buf = a.buf[:0]
			continue
		}
		if len(a.buf) < a.max {
			a.buf = append(a.buf, c)
		}
	}
	return lines
}

func trimLine(b []byte) string {
	for len(b) > 0 && (b[len(b)-1] == '\r' || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	for len(b) > 0 && b[0] == ' ' {
		b = b[1:]
	}
	return string(b)
}
