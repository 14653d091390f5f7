package retrieval

import (
	"strings"
	"testing"
)

func TestChunkDocumentCoversPolicy(t *testing.T) {
	chunks := ChunkDocument(PolicyDocument(), 500, 50)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}

	var focused int
	topics := make(map[string]bool)
	for _, c := range chunks {
		if c.Text == "" {
			t.Error("empty chunk")
		}
		if c.Words != len(strings.Fields(c.Text)) {
			t.Errorf("word count mismatch for chunk in section %d", c.Section)
		}
		if c.Topic != "" {
			focused++
			topics[c.Topic] = true
		}
	}

	for _, want := range []string{"casual_leave", "sick_leave", "earned_leave", "cancellation"} {
		if !topics[want] {
			t.Errorf("missing focused chunk for topic %s", want)
		}
	}
	if focused == 0 {
		t.Error("no focused chunks")
	}
}

func TestChunkDocumentWindowsLongSections(t *testing.T) {
	// 120 words in one section with a 50-word window and 10-word overlap
	// must produce overlapping windows, each at most 50 words.
	long := "1. " + strings.Repeat("word ", 120)
	chunks := ChunkDocument("intro\n"+long, 50, 10)

	windowed := 0
	for _, c := range chunks {
		if c.Words > 50 {
			t.Errorf("chunk has %d words, window is 50", c.Words)
		}
		if c.Section == 1 {
			windowed++
		}
	}
	if windowed < 3 {
		t.Errorf("expected >=3 windows over the long section, got %d", windowed)
	}
}

func TestSplitSectionsKeepsNumbers(t *testing.T) {
	doc := "Preamble\n1. First section body\n2. Second section body"
	sections := splitSections(doc)
	if len(sections) != 3 {
		t.Fatalf("len(sections) = %d, want 3", len(sections))
	}
	if !strings.HasPrefix(strings.TrimSpace(sections[1]), "1.") {
		t.Errorf("section lost its number: %q", sections[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(sections[2]), "2.") {
		t.Errorf("section lost its number: %q", sections[2])
	}
}
