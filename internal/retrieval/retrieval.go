// Package retrieval answers free-text questions about the leave policy. The
// policy document is chunked, embedded, and indexed in SQLite; queries are
// ranked by cosine similarity. A keyword searcher provides the same contract
// without an embedding backend.
package retrieval

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed policy.txt
var policyDocument string

// PolicyDocument returns the embedded leave policy text.
func PolicyDocument() string {
	return policyDocument
}

// Result is one ranked passage.
type Result struct {
	Text    string
	Score   float64
	Rank    int
	Section int
	Topic   string
}

// Searcher ranks policy passages against a question.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]Result, error)
}

// PolicyContext formats ranked results for inclusion in a reply, prefixing
// each passage with its relevance score and capping total length.
func PolicyContext(results []Result, maxLen int) string {
	var parts []string
	total := 0
	for _, r := range results {
		entry := fmt.Sprintf("[Score: %.3f] %s", r.Score, r.Text)
		if total+len(r.Text) <= maxLen {
			parts = append(parts, entry)
			total += len(r.Text)
			continue
		}
		remaining := maxLen - total
		if remaining > 100 {
			truncated := r.Text[:remaining-3] + "..."
			parts = append(parts, fmt.Sprintf("[Score: %.3f] %s", r.Score, truncated))
		}
		break
	}
	return strings.Join(parts, "\n\n---\n\n")
}
