// internal/lyrics/lyrics.go
//
// Lyric line model and LRC parsing.
// Responsibilities:
//   - Line: one timestamped lyric line with a hidden flag.
//   - ParseLRC: turn raw LRC text ("[mm:ss.xx]text") into an ordered line list.
//   - Validate: structural checks on a line sequence.
//
// Notes:
//   - Lines without a recognizable timestamp marker are dropped silently;
//     source LRC files routinely carry metadata tags and blank lines.
//   - Timestamps are not required to be monotonic. Display ordering is the
//     UI's problem; matching only depends on line indices.

package lyrics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Line is one timestamped lyric line within a song.
// Lines are value objects: edits to a song replace the whole sequence.
type Line struct {
	Index  int    `json:"index"`  // 0-based position within the song
	TimeMs int    `json:"timeMs"` // offset from song start, milliseconds
	Text   string `json:"text"`
	Hidden bool   `json:"hidden"` // withheld from the player during play
}

// timeTag matches an LRC timestamp like [01:23] or [01:23.45].
var timeTag = regexp.MustCompile(`\[(\d+):(\d{1,2})(?:\.(\d+))?\]`)

// ParseLRC converts raw LRC text into an ordered slice of lines.
// The fractional part is interpreted as a decimal fraction of a second,
// so ".9" is 900ms and ".45" is 450ms; extra precision is truncated.
func ParseLRC(src string) []Line {
	var out []Line
	for _, raw := range strings.Split(src, "\n") {
		m := timeTag.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		ms := 0
		if m[3] != "" {
			frac := m[3]
			for len(frac) < 3 {
				frac += "0"
			}
			ms, _ = strconv.Atoi(frac[:3])
		}
		text := strings.TrimSpace(timeTag.ReplaceAllString(raw, ""))
		out = append(out, Line{
			Index:  len(out),
			TimeMs: min*60_000 + sec*1_000 + ms,
			Text:   text,
		})
	}
	return out
}

// Validate checks a line sequence for structural problems:
// negative timestamps and duplicate or non-contiguous indices.
func Validate(lines []Line) error {
	if len(lines) == 0 {
		return errors.New("no lyric lines")
	}
	seen := make(map[int]struct{}, len(lines))
	for _, ln := range lines {
		if ln.TimeMs < 0 {
			return fmt.Errorf("line %d: negative timestamp %d", ln.Index, ln.TimeMs)
		}
		if _, dup := seen[ln.Index]; dup {
			return fmt.Errorf("duplicate line index %d", ln.Index)
		}
		seen[ln.Index] = struct{}{}
	}
	for i := range lines {
		if _, ok := seen[i]; !ok {
			return fmt.Errorf("line indices not contiguous: missing %d", i)
		}
	}
	return nil
}
