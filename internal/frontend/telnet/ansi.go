// Package telnet serves the word grid over Telnet with ANSI styling.
package telnet

import (
	"fmt"
	"strings"
)

// ANSI escape codes used by the board renderer.
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Underline = "\033[4m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightBlack  = "\033[90m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"

	BgBlue   = "\033[44m"
	BgYellow = "\033[43m"
)

// Colorize wraps text with the given ANSI codes and a reset suffix.
//
// Postcondition: Returns text prefixed by every code and followed by Reset.
func Colorize(color, text string, more ...string) string {
	return color + strings.Join(more, "") + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

// StripANSI removes ANSI SGR sequences from s. A sequence ends at its first
// final byte (0x40-0x7E); sequences that end in anything but 'm', or never
// end, are left in place.
//
// Postcondition: Returns s with all complete \033[...m sequences removed.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			if end := csiEnd(s, i+2); end >= 0 && s[end] == 'm' {
				i = end
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// csiEnd returns the index of the first CSI final byte at or after start, or -1.
func csiEnd(s string, start int) int {
	for j := start; j < len(s); j++ {
		if s[j] >= 0x40 && s[j] <= 0x7E {
			return j
		}
	}
	return -1
}

// VisibleWidth returns the number of printable characters in s.
func VisibleWidth(s string) int {
	return len([]rune(StripANSI(s)))
}
