package retrieval

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// stubEngine embeds text as term-count vectors over a tiny vocabulary, so
// similarity ranking is deterministic without a network backend.
type stubEngine struct{}

var stubVocabulary = []string{"casual", "sick", "earned", "cancel", "balance", "application"}

func (stubEngine) Embed(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vec := make([]float32, len(stubVocabulary))
	for i, term := range stubVocabulary {
		vec[i] = float32(strings.Count(lower, term))
	}
	return vec, nil
}

func (s stubEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (stubEngine) Dimensions() int { return len(stubVocabulary) }
func (stubEngine) Name() string    { return "stub" }

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(filepath.Join(t.TempDir(), "policy.db"), stubEngine{})
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndexBuildAndSearch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.EnsureBuilt(ctx, PolicyDocument(), 500, 50); err != nil {
		t.Fatalf("EnsureBuilt() error: %v", err)
	}
	n, err := idx.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("index empty after build")
	}

	results, err := idx.Search(ctx, "how much sick leave do I have", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results")
	}
	if !strings.Contains(strings.ToLower(results[0].Text), "sick") {
		t.Errorf("top result not about sick leave:\n%s", results[0].Text)
	}
	if results[0].Score < results[len(results)-1].Score {
		t.Error("results not sorted by score")
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("rank[%d] = %d", i, r.Rank)
		}
	}
}

func TestIndexBuildIsIdempotent(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.EnsureBuilt(ctx, PolicyDocument(), 500, 50); err != nil {
		t.Fatal(err)
	}
	first, _ := idx.Count()

	if err := idx.EnsureBuilt(ctx, PolicyDocument(), 500, 50); err != nil {
		t.Fatal(err)
	}
	second, _ := idx.Count()

	if first != second {
		t.Errorf("rebuild changed chunk count: %d -> %d", first, second)
	}
}
