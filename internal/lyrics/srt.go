// Package lyrics provides the subtitle timing core: SRT parsing, active line
// tracking and the scroll math used to keep the active line centered.
package lyrics

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Separator splits the start and end timestamps on a block's timing line.
const Separator = "-->"

// Segment is one timed subtitle entry. Start and End are in seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// BlockError describes a subtitle block that could not be turned into a Segment.
type BlockError struct {
	Block  int    // zero-based block number in the document
	Line   string // the offending timing line, if any
	Reason string
}

func (e *BlockError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("block %d: %s", e.Block, e.Reason)
	}
	return fmt.Sprintf("block %d: %s: %q", e.Block, e.Reason, e.Line)
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse splits an SRT document into segments in document order.
//
// Blocks whose text is empty are dropped silently. Malformed blocks (missing
// timing line, missing separator, unparseable timestamps) are skipped and
// reported in the returned slice; the rest of the document still parses.
func Parse(doc string) ([]Segment, []*BlockError) {
	doc = strings.TrimPrefix(doc, "\ufeff")
	doc = strings.TrimFunc(newlines.Replace(doc), isSpace)
	if doc == "" {
		return nil, nil
	}

	var segments []Segment
	var skipped []*BlockError

	for i, block := range splitBlocks(doc) {
		seg, err := parseBlock(i, block)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if strings.TrimFunc(seg.Text, isSpace) == "" {
			continue
		}
		segments = append(segments, seg)
	}

	return segments, skipped
}

// isSpace matches Unicode white space plus the zero-width no-break space.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// splitBlocks splits doc on runs of blank lines. A line holding only white
// space counts as blank.
func splitBlocks(doc string) []string {
	var blocks []string
	var cur []string
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimFunc(line, isSpace) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, strings.Join(cur, "\n"))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, strings.Join(cur, "\n"))
	}
	return blocks
}

func parseBlock(n int, block string) (Segment, *BlockError) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return Segment{}, &BlockError{Block: n, Reason: "missing timing line"}
	}

	timing := lines[1]
	start, end, ok := strings.Cut(timing, Separator)
	if !ok {
		return Segment{}, &BlockError{Block: n, Line: timing, Reason: "missing " + Separator}
	}

	seg := Segment{
		Start: ParseTime(strings.TrimSpace(start)),
		End:   ParseTime(strings.TrimSpace(end)),
		Text:  strings.Join(lines[2:], " "),
	}
	if math.IsNaN(seg.Start) || math.IsNaN(seg.End) {
		return Segment{}, &BlockError{Block: n, Line: timing, Reason: "bad timestamp"}
	}
	return seg, nil
}
