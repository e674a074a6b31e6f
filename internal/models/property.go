package models

import (
	"encoding/json"
	"time"
)

type Property struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	PropertyType string        `json:"property_type"`
	City         string        `json:"city"`
	RoomsCount   int           `json:"rooms_count"`
	RoomsDetails []interface{} `json:"rooms_details"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Owner        Owner         `json:"owner"`
}

// ParseRoomsDetails decodes stored rooms_details text back into the ordered
// list it was written from. Malformed or non-list text degrades to an empty
// list instead of failing the read.
func ParseRoomsDetails(raw string) []interface{} {
	if raw == "" {
		return []interface{}{}
	}
	var details []interface{}
	if err := json.Unmarshal([]byte(raw), &details); err != nil || details == nil {
		return []interface{}{}
	}
	return details
}
