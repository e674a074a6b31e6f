package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var propertyTextFields = []string{"name", "description", "property_type", "city"}

// extractPropertyPayload validates and normalizes a property payload into a
// column-to-value mapping ready for the storage layer. In partial mode
// absent fields are skipped instead of defaulted; the returned message is
// empty on success.
func extractPropertyPayload(payload map[string]json.RawMessage, partial bool) (map[string]interface{}, string) {
	fields := map[string]interface{}{}

	for _, field := range propertyTextFields {
		raw, ok := payload[field]
		if !ok {
			if !partial {
				return nil, fmt.Sprintf("%s is required", field)
			}
			continue
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil || value == nil || strings.TrimSpace(*value) == "" {
			return nil, fmt.Sprintf("%s cannot be empty", field)
		}
		fields[field] = strings.TrimSpace(*value)
	}

	var details []interface{}
	rawDetails, detailsProvided := payload["rooms_details"]
	if detailsProvided {
		if !isNullOrEmpty(rawDetails) {
			if err := json.Unmarshal(rawDetails, &details); err != nil {
				return nil, "rooms_details must be a list"
			}
		}
		if details == nil {
			details = []interface{}{}
		}
		serialized, err := json.Marshal(details)
		if err != nil {
			return nil, "rooms_details must be a list"
		}
		fields["rooms_details"] = string(serialized)
	} else if !partial {
		details = []interface{}{}
		fields["rooms_details"] = "[]"
	}

	rawCount, countProvided := payload["rooms_count"]
	switch {
	case countProvided:
		count, ok := parseRoomsCount(rawCount)
		if !ok {
			return nil, "rooms_count must be an integer"
		}
		if count < 0 {
			count = 0
		}
		fields["rooms_count"] = count
	case detailsProvided:
		fields["rooms_count"] = len(details)
	case !partial:
		fields["rooms_count"] = len(details)
	}

	return fields, ""
}

// isNullOrEmpty matches the payload values that collapse to an empty
// rooms_details list: JSON null and the empty string.
func isNullOrEmpty(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "null" || trimmed == `""`
}

// parseRoomsCount accepts a JSON number (truncated) or a string holding a
// base-10 integer.
func parseRoomsCount(raw json.RawMessage) (int, bool) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return int(v), true
	case string:
		count, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return count, true
	}
	return 0, false
}
