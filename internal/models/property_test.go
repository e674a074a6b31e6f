package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoomsDetails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []interface{}
	}{
		{
			name: "empty text",
			raw:  "",
			want: []interface{}{},
		},
		{
			name: "stored null",
			raw:  "null",
			want: []interface{}{},
		},
		{
			name: "malformed text degrades to empty",
			raw:  "{not json",
			want: []interface{}{},
		},
		{
			name: "non-list text degrades to empty",
			raw:  `{"type":"bedroom"}`,
			want: []interface{}{},
		},
		{
			name: "list round-trips in order",
			raw:  `[{"type":"bedroom","size":15},{"type":"kitchen","size":10}]`,
			want: []interface{}{
				map[string]interface{}{"type": "bedroom", "size": float64(15)},
				map[string]interface{}{"type": "kitchen", "size": float64(10)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRoomsDetails(tt.raw))
		})
	}
}
