package tuitest

import (
	"regexp"
	"strings"
)

// Screen is one rendered frame with escape sequences stripped.
type Screen struct {
	Index int
	Plain string
}

var (
	clearPattern = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	// escapePattern matches everything that is not visible text: OSC
	// sequences, CSI sequences, charset shifts, and NULs.
	escapePattern = regexp.MustCompile(`\x1b\][^\x07]*(?:\x07|\x1b\\)|\x1b\[[0-9;?]*[A-Za-z]|[\x00\x0e\x0f]`)
)

// splitScreens cuts the raw stream on clear-screen sequences, the boundary
// between successive full renders in alt-screen mode, and reduces each
// segment to its visible text.
func splitScreens(raw []byte) []Screen {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var screens []Screen
	for _, segment := range clearPattern.Split(stream, -1) {
		plain := plainText(segment)
		if plain == "" {
			continue
		}
		screens = append(screens, Screen{Index: len(screens), Plain: plain})
	}
	if screens == nil && len(stream) > 0 {
		screens = append(screens, Screen{Plain: plainText(stream)})
	}
	return screens
}

// plainText strips escape sequences and trailing whitespace, returning ""
// when nothing visible remains.
func plainText(segment string) string {
	lines := strings.Split(escapePattern.ReplaceAllString(segment, ""), "\n")
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	var b strings.Builder
	for i, line := range lines[:end] {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(line, " "))
	}
	if strings.TrimSpace(b.String()) == "" {
		return ""
	}
	return b.String()
}

// Last returns the final screen, or false when nothing was rendered.
func (t *Transcript) Last() (Screen, bool) {
	if t == nil || len(t.Screens) == 0 {
		return Screen{}, false
	}
	return t.Screens[len(t.Screens)-1], true
}

// Saw reports whether any screen contained the given text.
func (t *Transcript) Saw(text string) bool {
	if t == nil {
		return false
	}
	for _, screen := range t.Screens {
		if strings.Contains(screen.Plain, text) {
			return true
		}
	}
	return false
}
