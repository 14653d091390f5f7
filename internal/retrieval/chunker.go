package retrieval

import (
	"regexp"
	"strconv"
	"strings"
)

// Chunk is one indexable passage of the policy document.
type Chunk struct {
	Text    string
	Section int
	Words   int
	Topic   string // non-empty for focused topic chunks
}

var sectionSplit = regexp.MustCompile(`\n\s*(\d+)\.`)

// topicHeadings maps focused topics to the heading that opens their passage.
// Focused chunks duplicate high-value spans so a pointed question ("can I
// carry forward earned leave?") lands on a tight passage instead of a whole
// section.
var topicHeadings = []struct {
	topic   string
	heading string
}{
	{"casual_leave", "2.1 Casual Leave"},
	{"sick_leave", "2.2 Sick Leave"},
	{"earned_leave", "2.3 Earned Leave"},
	{"application_process", "3. Leave Application Procedures"},
	{"leave_balance", "4. Leave Balance and Tracking"},
	{"cancellation", "5. Leave Cancellation"},
}

// ChunkDocument splits the policy text into overlapping word-window chunks
// per numbered section, plus focused per-topic chunks. chunkSize and overlap
// are in words.
func ChunkDocument(text string, chunkSize, overlap int) []Chunk {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 50
	}

	var chunks []Chunk
	for i, section := range splitSections(text) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		words := strings.Fields(section)
		if len(words) <= chunkSize {
			chunks = append(chunks, Chunk{Text: section, Section: i, Words: len(words)})
			continue
		}

		step := chunkSize - overlap
		for start := 0; start < len(words); start += step {
			end := start + chunkSize
			if end > len(words) {
				end = len(words)
			}
			chunks = append(chunks, Chunk{
				Text:    strings.Join(words[start:end], " "),
				Section: i,
				Words:   end - start,
			})
			if end == len(words) {
				break
			}
		}
	}

	chunks = append(chunks, focusedChunks(text)...)
	return chunks
}

// splitSections cuts the document at top-level numbered headings, putting
// the heading number back on each piece so chunks stay self-describing.
func splitSections(text string) []string {
	locs := sectionSplit.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var sections []string
	sections = append(sections, text[:locs[0][0]])
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		num := text[loc[2]:loc[3]]
		body := text[loc[1]:end]
		sections = append(sections, num+"."+body)
	}
	return sections
}

// focusedChunks extracts each topic's passage: from its heading up to the
// next numbered heading.
func focusedChunks(text string) []Chunk {
	var out []Chunk
	for _, th := range topicHeadings {
		start := strings.Index(text, th.heading)
		if start == -1 {
			continue
		}
		end := nextHeading(text, start+len(th.heading))
		passage := strings.TrimSpace(text[start:end])
		if len(passage) <= 50 {
			continue
		}
		out = append(out, Chunk{
			Text:    passage,
			Section: headingSection(th.heading),
			Words:   len(strings.Fields(passage)),
			Topic:   th.topic,
		})
	}
	return out
}

func nextHeading(text string, from int) int {
	if loc := sectionSplit.FindStringIndex(text[from:]); loc != nil {
		return from + loc[0]
	}
	return len(text)
}

func headingSection(heading string) int {
	num := strings.SplitN(heading, ".", 2)[0]
	n, _ := strconv.Atoi(num)
	return n
}
