// Package proto implements the wire protocol: newline-terminated ASCII
// lines, one command per line, no acknowledgement. Malformed input is
// reported as not-a-command and dropped by the caller; the protocol is
// snapshot-based, so the next well-formed command overwrites any state a
// garbled one would have touched.
package proto

import (
	"strconv"
	"strings"
)

// Kind tags a parsed command.
type Kind int

const (
	KindMode Kind = iota
	KindLive
	KindClock
	KindMusic
	KindNotify
	KindText
	KindBacklight
	KindVolume
	KindBars
	KindChannels
	KindChannelScreen
	KindAudioScreen
	KindLogoScreen
	KindVUMode
	KindVUFrame
	KindFramebuffer
	KindSystem
	KindGoodbye
	KindReset
)

// Switch is the argument of the ON/OFF/TOGGLE commands.
type Switch int

const (
	SwitchOff Switch = iota
	SwitchOn
	SwitchToggle
)

// BandCount is the number of VU spectrum columns.
const BandCount = 32

// Command is the tagged result of parsing one line. Only the fields
// relevant to Kind are populated.
type Command struct {
	Kind Kind

	Mode   int    // KindMode: 1..8
	A, B   int    // KindLive counters
	Top    string // CLOCK/MUSIC/NOTIFY top line
	Bottom string // CLOCK/MUSIC/NOTIFY bottom line
	Text   string // KindText payload
	Volume int    // KindVolume, clamped 0..100
	Device string // KindVolume source name
	Bars   [4]int // KindBars, clamped 0..8
	Levels []int  // KindChannels, each clamped 0..100, len 1..6
	Switch Switch // BACKLIGHT/CHANNEL/AUDIO/LOGO/VUMODE

	Bands [BandCount]int // KindVUFrame heights, 0..8
	Rows  [8]uint32      // KindFramebuffer, bit 31 = leftmost column

	CPUPct int     // KindSystem
	CPUGHz float64 // KindSystem
	GPUPct int     // KindSystem
	RAMPct int     // KindSystem
}

// Parse turns one trimmed line into a Command. ok is false for anything
// unrecognized, too short, or with an unparseable payload.
func Parse(line string) (Command, bool) {
	switch {
	case line == "GOODBYE":
		return Command{Kind: KindGoodbye}, true
	case line == "RESET":
		return Command{Kind: KindReset}, true
	case strings.HasPrefix(line, "MODE:"):
		return parseMode(line[5:])
	case strings.HasPrefix(line, "LIVE:"):
		return parseLive(line[5:])
	case strings.HasPrefix(line, "CLOCK:"):
		return parseTwoLine(KindClock, line[6:])
	case strings.HasPrefix(line, "MUSIC:"):
		return parseTwoLine(KindMusic, line[6:])
	case strings.HasPrefix(line, "NOTIFY:"):
		return parseTwoLine(KindNotify, line[7:])
	case strings.HasPrefix(line, "TEXT:"):
		return Command{Kind: KindText, Text: Sanitize(line[5:])}, true
	case strings.HasPrefix(line, "BACKLIGHT:"):
		return parseSwitch(KindBacklight, line[10:], true)
	case strings.HasPrefix(line, "VOL:"):
		return parseVolume(line[4:])
	case strings.HasPrefix(line, "L:"):
		return parseBars(line[2:])
	case strings.HasPrefix(line, "CH:"):
		return parseChannels(line[3:])
	case strings.HasPrefix(line, "CHANNEL:"):
		return parseSwitch(KindChannelScreen, line[8:], false)
	case strings.HasPrefix(line, "AUDIO:"):
		return parseSwitch(KindAudioScreen, line[6:], false)
	case strings.HasPrefix(line, "LOGO:"):
		return parseSwitch(KindLogoScreen, line[5:], false)
	case strings.HasPrefix(line, "LOGO="):
		return parseLogoAssign(line[5:])
	case strings.HasPrefix(line, "VUMODE:"):
		return parseSwitch(KindVUMode, line[7:], false)
	case strings.HasPrefix(line, "V:"):
		return parseVUFrame(line[2:])
	case strings.HasPrefix(line, "FB:"):
		return parseFramebuffer(line[3:])
	case strings.HasPrefix(line, "SYS:"):
		return parseSystem(line[4:])
	}
	return Command{}, false
}

// Sanitize keeps printable ASCII and trims surrounding whitespace;
// everything else becomes a space.
func Sanitize(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			b[i] = ' '
		}
	}
	return strings.TrimSpace(string(b))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseMode(body string) (Command, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return Command{}, false
	}
	return Command{Kind: KindMode, Mode: n}, true
}

func parseLive(body string) (Command, bool) {
	a, b, ok := splitInts2(body)
	if !ok {
		return Command{}, false
	}
	return Command{Kind: KindLive, A: a, B: b}, true
}

func splitInts2(body string) (int, int, bool) {
	i := strings.IndexByte(body, ',')
	if i < 0 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(body[:i]))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(body[i+1:]))
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}

func parseTwoLine(k Kind, body string) (Command, bool) {
	top, bottom := body, ""
	if i := strings.IndexByte(body, '|'); i >= 0 {
		top, bottom = body[:i], body[i+1:]
	}
	return Command{Kind: k, Top: Sanitize(top), Bottom: Sanitize(bottom)}, true
}

func parseSwitch(k Kind, body string, allowToggle bool) (Command, bool) {
	switch strings.TrimSpace(body) {
	case "ON":
		return Command{Kind: k, Switch: SwitchOn}, true
	case "OFF":
		return Command{Kind: k, Switch: SwitchOff}, true
	case "TOGGLE":
		if allowToggle {
			return Command{Kind: k, Switch: SwitchToggle}, true
		}
	}
	return Command{}, false
}

// The host emits both LOGO:ON/OFF and the older LOGO=true/false form.
func parseLogoAssign(body string) (Command, bool) {
	switch strings.TrimSpace(body) {
	case "true":
		return Command{Kind: KindLogoScreen, Switch: SwitchOn}, true
	case "false":
		return Command{Kind: KindLogoScreen, Switch: SwitchOff}, true
	}
	return Command{}, false
}

func parseVolume(body string) (Command, bool) {
	dev := ""
	if i := strings.IndexByte(body, '|'); i >= 0 {
		body, dev = body[:i], body[i+1:]
	}
	v, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return Command{}, false
	}
	return Command{Kind: KindVolume, Volume: clamp(v, 0, 100), Device: Sanitize(dev)}, true
}

func parseBars(body string) (Command, bool) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return Command{}, false
	}
	var cmd Command
	cmd.Kind = KindBars
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Command{}, false
		}
		cmd.Bars[i] = clamp(v, 0, 8)
	}
	return cmd, true
}

// parseChannels accepts up to six comma-separated values. Shorter lists are
// valid: the dispatcher leaves trailing channels at their previous value.
func parseChannels(body string) (Command, bool) {
	parts := strings.Split(body, ",")
	if len(parts) == 0 || len(parts) > 6 {
		return Command{}, false
	}
	levels := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Command{}, false
		}
		levels = append(levels, clamp(v, 0, 100))
	}
	return Command{Kind: KindChannels, Levels: levels}, true
}

// parseVUFrame decodes a fixed 32-char payload of '0'..'8' band heights.
// Any other character counts as 0.
func parseVUFrame(body string) (Command, bool) {
	if len(body) < BandCount {
		return Command{}, false
	}
	var cmd Command
	cmd.Kind = KindVUFrame
	for i := 0; i < BandCount; i++ {
		c := body[i]
		if c >= '0' && c <= '8' {
			cmd.Bands[i] = int(c - '0')
		}
	}
	return cmd, true
}

// parseFramebuffer decodes 8 rows of 8 hex nibbles each, MSB first: bit 31
// of a row is the leftmost of the 32 columns.
func parseFramebuffer(body string) (Command, bool) {
	if len(body) < 64 {
		return Command{}, false
	}
	var cmd Command
	cmd.Kind = KindFramebuffer
	for r := 0; r < 8; r++ {
		v, err := strconv.ParseUint(body[r*8:(r+1)*8], 16, 32)
		if err != nil {
			return Command{}, false
		}
		cmd.Rows[r] = uint32(v)
	}
	return cmd, true
}

func parseSystem(body string) (Command, bool) {
	bar := strings.IndexByte(body, '|')
	if bar < 0 {
		return Command{}, false
	}
	cpu := strings.SplitN(body[:bar], ",", 2)
	rest := strings.SplitN(body[bar+1:], ",", 2)
	if len(cpu) != 2 || len(rest) != 2 {
		return Command{}, false
	}
	cpuPct, err := strconv.Atoi(strings.TrimSpace(cpu[0]))
	if err != nil {
		return Command{}, false
	}
	ghz, err := strconv.ParseFloat(strings.TrimSpace(cpu[1]), 64)
	if err != nil {
		return Command{}, false
	}
	gpuPct, err := strconv.Atoi(strings.TrimSpace(rest[0]))
	if err != nil {
		return Command{}, false
	}
	ramPct, err := strconv.Atoi(strings.TrimSpace(rest[1]))
	if err != nil {
		return Command{}, false
	}
	return Command{Kind: KindSystem, CPUPct: cpuPct, CPUGHz: ghz, GPUPct: gpuPct, RAMPct: ramPct}, true
}
