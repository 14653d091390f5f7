// Package articulation handles the structured payloads the model embeds in
// its prose: extracting the EXTRACTED_INFO field block and scrubbing it from
// user-visible replies.
package articulation

// Marker is the delimiter token that prefixes an embedded field update in
// model output.
const Marker = "EXTRACTED_INFO:"

// scanBalancedObject scans s from the opening brace at start and returns the
// index just past the matching close brace. It handles nested braces and
// string escaping, so values containing braces or newlines do not break the
// boundary. Returns ok=false when no balanced object terminates.
//
// Note: iterating bytes is safe for the ASCII delimiters ({, }, ", \)
// because UTF-8 guarantees ASCII bytes never occur inside a multi-byte rune.
func scanBalancedObject(s string, start int) (end int, ok bool) {
	if start >= len(s) || s[start] != '{' {
		return 0, false
	}

	var depth int
	var inString bool
	var escape bool

	for i := start; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}
