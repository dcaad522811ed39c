package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]interface{}
	}{
		{"plain object", `{"phone": "+90 212 345 67 89"}`, map[string]interface{}{"phone": "+90 212 345 67 89"}},
		{"fenced object", "```json\n{\"phone\": null}\n```", map[string]interface{}{"phone": nil}},
		{"bare fence", "```\n{\"ok\": true}\n```", map[string]interface{}{"ok": true}},
		{"surrounding whitespace", "  \n {\"a\": 1} \n", map[string]interface{}{"a": float64(1)}},
		{"garbage yields empty object", "sorry, I can't do that", map[string]interface{}{}},
		{"array yields empty object", `[1, 2, 3]`, map[string]interface{}{}},
		{"empty input yields empty object", "", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseJSONObject(tt.in))
		})
	}
}
