// Package console implements component J: the scrollback ring buffer,
// resize reflow, notify-timed overlay lines, and cursor blink.
// Grounded on the teacher's quakelib/console.go (qconsole's
// text/origText/times/lineWidth shape, CheckResize/Print/DrawNotify
// idiom) but with the reflow on resize actually implemented — the
// teacher left that as `// TODO`.
package console

import (
	"fmt"
	"strings"
)

// TextSize is the ring buffer's cell budget, matching CON_TEXTSIZE.
const TextSize = 131072

// notifyLines is how many of the most recent timestamped lines
// DrawNotify considers, matching the teacher's times [4]time.Time.
const notifyLines = 4

// Console owns the scrollback buffer and the timed notify overlay.
type Console struct {
	lines      []string // each entry already includes its trailing '\n' except possibly the last
	stamps     []float64
	lineWidth  int // characters, set by CheckResize
	backScroll int
	cursorBlinkAccum float64
}

func New() *Console {
	return &Console{lineWidth: 38}
}

// CheckResize reflows every existing line to the new width when it
// changes, per spec.md §4.J. newWidth is in characters (pixel width
// divided by the glyph width, caller's concern).
func (c *Console) CheckResize(newWidth int) {
	if newWidth == c.lineWidth || newWidth <= 0 {
		return
	}
	flat := strings.Join(c.lines, "")
	c.lineWidth = newWidth
	c.lines = reflow(flat, newWidth)
	c.backScroll = 0
}

// reflow re-wraps text at width characters per line, preserving
// explicit '\n' breaks and inserting soft breaks elsewhere so no line
// this function produces exceeds width characters.
func reflow(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, hard := range strings.SplitAfter(text, "\n") {
		if hard == "" {
			continue
		}
		body := strings.TrimSuffix(hard, "\n")
		hadNewline := len(body) != len(hard)
		for len(body) > width {
			out = append(out, body[:width])
			body = body[width:]
		}
		if hadNewline {
			out = append(out, body+"\n")
		} else if body != "" {
			out = append(out, body)
		}
	}
	return out
}

// Print appends txt to the scrollback, splitting on '\n' the same way
// the teacher's Con_Print does: text without a trailing newline keeps
// accumulating onto the last line until one arrives.
func (c *Console) Print(txt string, now float64) {
	if len(txt) == 0 {
		return
	}
	var parts []string
	for {
		i := strings.IndexByte(txt, '\n')
		if i < 0 {
			break
		}
		parts = append(parts, txt[:i+1])
		txt = txt[i+1:]
	}
	if len(txt) > 0 {
		parts = append(parts, txt)
	}

	newLines := 0
	if len(c.lines) == 0 || strings.HasSuffix(c.lines[len(c.lines)-1], "\n") {
		c.lines = append(c.lines, parts...)
		newLines = len(parts)
	} else {
		c.lines[len(c.lines)-1] += parts[0]
		c.lines = append(c.lines, parts[1:]...)
		newLines = len(parts) - 1
	}
	c.trim()
	for i := 0; i < newLines; i++ {
		c.stamps = append(c.stamps, now)
	}
	if len(c.stamps) > notifyLines {
		c.stamps = c.stamps[len(c.stamps)-notifyLines:]
	}
}

// trim drops the oldest lines once the buffer exceeds TextSize total
// characters, the ring-buffer eviction spec.md §4.J calls for.
func (c *Console) trim() {
	total := 0
	for _, l := range c.lines {
		total += len(l)
	}
	for total > TextSize && len(c.lines) > 0 {
		total -= len(c.lines[0])
		c.lines = c.lines[1:]
	}
}

func (c *Console) Printf(format string, v ...interface{}) {
	c.Print(fmt.Sprintf(format, v...), 0)
}

func (c *Console) Clear() {
	c.lines = nil
	c.stamps = nil
	c.backScroll = 0
}

// NotifyLines returns the lines whose stamp is within notifyTime
// seconds of now, oldest first, for the top-of-screen overlay.
func (c *Console) NotifyLines(now, notifyTime float64) []string {
	var out []string
	start := len(c.lines) - len(c.stamps)
	for i, st := range c.stamps {
		if now-st < notifyTime {
			out = append(out, c.lines[start+i])
		}
	}
	return out
}

// VisibleLines returns the scrollback window of n lines ending
// backScroll lines up from the bottom, for the full console draw.
func (c *Console) VisibleLines(n int) []string {
	if n <= 0 || len(c.lines) == 0 {
		return nil
	}
	end := len(c.lines) - c.backScroll
	if end > len(c.lines) {
		end = len(c.lines)
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	if end < 0 {
		return nil
	}
	return c.lines[start:end]
}

func (c *Console) ScrollUp(step int) {
	c.backScroll += step
	c.clampScroll()
}

func (c *Console) ScrollDown(step int) {
	c.backScroll -= step
	c.clampScroll()
}

func (c *Console) clampScroll() {
	max := len(c.lines)
	if c.backScroll < 0 {
		c.backScroll = 0
	}
	if c.backScroll > max {
		c.backScroll = max
	}
}

// CursorVisible implements the teacher's blink idiom, `(realtime>>8)&1`,
// against a float seconds clock instead of an integer millisecond one.
func CursorVisible(realtime float64) bool {
	ms := int64(realtime * 1000)
	return (ms>>8)&1 == 0
}
