package articulation

import "strings"

// Sanitize removes the extraction marker and its balanced-brace payload from
// a reply, joining the surrounding text with a blank line. Input without the
// marker is returned unchanged, and sanitizing twice equals sanitizing once.
//
// A marker with no parseable payload after it is left alone, matching the
// extractor: if nothing was extracted, there is nothing to scrub.
func Sanitize(response string) string {
	for {
		markerPos := strings.Index(response, Marker)
		if markerPos == -1 {
			return response
		}

		jsonStart := strings.Index(response[markerPos:], "{")
		if jsonStart == -1 {
			return response
		}
		jsonStart += markerPos

		jsonEnd, ok := scanBalancedObject(response, jsonStart)
		if !ok {
			return response
		}

		before := strings.TrimSpace(response[:markerPos])
		after := strings.TrimSpace(response[jsonEnd:])
		switch {
		case before == "":
			response = after
		case after == "":
			response = before
		default:
			response = before + "\n\n" + after
		}
	}
}
