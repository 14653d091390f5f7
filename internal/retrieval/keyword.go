package retrieval

import (
	"context"
	"sort"
	"strings"

	"leavedesk/internal/logging"
)

// KeywordSearcher ranks chunks by term overlap with the question. It serves
// as the retrieval backend when no embedding API key is configured, keeping
// policy questions answerable offline.
type KeywordSearcher struct {
	chunks []Chunk
}

// NewKeywordSearcher chunks the document once up front.
func NewKeywordSearcher(document string, chunkSize, overlap int) *KeywordSearcher {
	return &KeywordSearcher{chunks: ChunkDocument(document, chunkSize, overlap)}
}

// topicTerms routes common question phrasings to their focused topic.
var topicTerms = map[string][]string{
	"casual_leave":        {"casual"},
	"sick_leave":          {"sick", "medical", "certificate", "illness"},
	"earned_leave":        {"earned", "annual", "vacation", "carry"},
	"application_process": {"apply", "application", "procedure", "approval", "supervisor"},
	"leave_balance":       {"balance", "remaining", "tracking"},
	"cancellation":        {"cancel", "cancellation"},
}

// Search scores every chunk against the query terms. Focused chunks whose
// topic matches the question get a routing boost so pointed questions land
// on tight passages.
func (k *KeywordSearcher) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = 3
	}

	queryLower := strings.ToLower(query)
	queryWords := termSet(queryLower)

	var matchedTopics []string
	for topic, terms := range topicTerms {
		for _, term := range terms {
			if strings.Contains(queryLower, term) {
				matchedTopics = append(matchedTopics, topic)
				break
			}
		}
	}

	var results []Result
	for _, c := range k.chunks {
		score := overlapScore(queryWords, strings.ToLower(c.Text))
		for _, topic := range matchedTopics {
			if c.Topic == topic {
				score += 0.5
			}
		}
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Text:    c.Text,
			Score:   score,
			Section: c.Section,
			Topic:   c.Topic,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}

	logging.RetrievalDebug("keyword search %q: %d results", query, len(results))
	return results, nil
}

// stopWords are too common to signal relevance.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "be": true, "can": true,
	"do": true, "for": true, "how": true, "i": true, "in": true, "is": true,
	"it": true, "many": true, "may": true, "my": true, "of": true, "on": true,
	"the": true, "to": true, "what": true, "when": true, "which": true,
}

func termSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, ".,?!:;\"'()")
		if len(w) > 1 && !stopWords[w] {
			set[w] = true
		}
	}
	return set
}

// overlapScore is the fraction of query terms present in the chunk.
func overlapScore(queryWords map[string]bool, chunkLower string) float64 {
	if len(queryWords) == 0 {
		return 0
	}
	hits := 0
	for w := range queryWords {
		if strings.Contains(chunkLower, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(queryWords))
}
