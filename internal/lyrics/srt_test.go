package lyrics

import (
	"errors"
	"strings"
	"testing"
)

func TestParseThreeBlocks(t *testing.T) {
	doc := `1
00:00:00,000 --> 00:00:02,000
A

2
00:00:02,000 --> 00:00:04,000
B

3
00:00:04,000 --> 00:00:06,000
C
`
	segments, skipped := Parse(doc)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", skipped)
	}

	expected := []Segment{
		{Start: 0, End: 2, Text: "A"},
		{Start: 2, End: 4, Text: "B"},
		{Start: 4, End: 6, Text: "C"},
	}
	if len(segments) != len(expected) {
		t.Fatalf("got %d segments, want %d", len(segments), len(expected))
	}
	for i := range expected {
		if segments[i] != expected[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segments[i], expected[i])
		}
	}
}

func TestParseJoinsTextLines(t *testing.T) {
	doc := "1\n00:00:01,000 --> 00:00:03,000\nfirst line\nsecond line\n"
	segments, _ := Parse(doc)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Text != "first line second line" {
		t.Errorf("Text = %q", segments[0].Text)
	}
}

func TestParseDropsEmptyText(t *testing.T) {
	doc := `1
00:00:00,000 --> 00:00:01,000
Hello

2
00:00:01,000 --> 00:00:02,000

3
00:00:02,000 --> 00:00:03,000
World`

	segments, skipped := Parse(doc)
	if len(skipped) != 0 {
		t.Errorf("empty text should not be reported: %v", skipped)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Text != "Hello" || segments[1].Text != "World" {
		t.Errorf("texts = %q, %q", segments[0].Text, segments[1].Text)
	}
	if segments[1].Start != 2 {
		t.Errorf("World start = %v, want 2", segments[1].Start)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	doc := `1
00:00:00,000 --> 00:00:01,000
Kept

7

3
no separator here
Lost

4
xx:00:00,000 --> 00:00:05,000
Bad time

5
00:00:05,000 --> 00:00:06,000
Also kept`

	segments, skipped := Parse(doc)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Text != "Kept" || segments[1].Text != "Also kept" {
		t.Errorf("texts = %q, %q", segments[0].Text, segments[1].Text)
	}

	if len(skipped) != 3 {
		t.Fatalf("got %d skipped blocks, want 3", len(skipped))
	}
	wantBlocks := []int{1, 2, 3}
	for i, b := range skipped {
		if b.Block != wantBlocks[i] {
			t.Errorf("skipped[%d].Block = %d, want %d", i, b.Block, wantBlocks[i])
		}
	}

	var be *BlockError
	if !errors.As(error(skipped[1]), &be) || !strings.Contains(be.Error(), "-->") {
		t.Errorf("unexpected error text: %v", skipped[1])
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	doc := "\ufeff1\r\n00:00:00,000 --> 00:00:02,000\r\nHello\r\n\r\n2\r\n00:00:02,000 --> 00:00:04,000\r\nWorld\r\n"
	segments, skipped := Parse(doc)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", skipped)
	}
	if len(segments) != 2 || segments[0].Text != "Hello" || segments[1].Text != "World" {
		t.Errorf("segments = %+v", segments)
	}
}

func TestParseBlankLinesWithWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		blank string
	}{
		{"spaces and tabs", "   \t\n"},
		{"vertical tab", "\v"},
		{"no-break space", "\u00a0"},
		{"ideographic space", "\u3000"},
		{"zero-width no-break space", "\ufeff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "1\n00:00:00,000 --> 00:00:02,000\nHello\n" + tt.blank + "\n2\n00:00:02,000 --> 00:00:04,000\nWorld"
			segments, skipped := Parse(doc)
			if len(skipped) != 0 {
				t.Fatalf("unexpected skipped blocks: %v", skipped)
			}
			if len(segments) != 2 {
				t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
			}
			if segments[0].Text != "Hello" || segments[1].Text != "World" {
				t.Errorf("segments = %+v", segments)
			}
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "   \n\n  "} {
		segments, skipped := Parse(doc)
		if len(segments) != 0 || len(skipped) != 0 {
			t.Errorf("Parse(%q) = %v, %v", doc, segments, skipped)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	block := "1\n00:00:01,000 --> 00:00:02,000\nSome lyric text here\n\n"
	doc := strings.Repeat(block, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parse(doc)
	}
}
