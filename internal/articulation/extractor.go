package articulation

import (
	"encoding/json"
	"strings"

	"leavedesk/internal/logging"
)

// ExtractInfo scans model output for the extraction marker and parses the
// balanced-brace object that follows it. Extraction is best-effort: a missing
// marker or malformed payload yields (nil, false) and never an error, so a
// bad extraction can never abort a turn.
func ExtractInfo(content string) (map[string]interface{}, bool) {
	markerPos := strings.Index(content, Marker)
	if markerPos == -1 {
		return nil, false
	}

	jsonStart := strings.Index(content[markerPos:], "{")
	if jsonStart == -1 {
		logging.ArticulationDebug("marker present but no opening brace follows")
		return nil, false
	}
	jsonStart += markerPos

	jsonEnd, ok := scanBalancedObject(content, jsonStart)
	if !ok {
		logging.ArticulationDebug("unbalanced extraction payload, skipping")
		return nil, false
	}

	var extracted map[string]interface{}
	if err := json.Unmarshal([]byte(content[jsonStart:jsonEnd]), &extracted); err != nil {
		logging.ArticulationDebug("failed to parse extraction payload: %v", err)
		return nil, false
	}

	logging.ArticulationDebug("extracted %d fields", len(extracted))
	return extracted, true
}
