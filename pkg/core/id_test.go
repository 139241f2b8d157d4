package core_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/daycraft/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  core.ID
	}{
		{name: "string", input: `"1704067200000"`, want: "1704067200000"},
		{name: "number", input: `1704067200000`, want: "1704067200000"},
		{name: "null", input: `null`, want: ""},
		{name: "uuid", input: `"0190a5c6-0000-7000-8000-000000000000"`, want: "0190a5c6-0000-7000-8000-000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got core.ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad core.ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &bad))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[core.ID]bool)
	for i := 0; i < 10000; i++ {
		id := core.NewID()
		if seen[id] {
			t.Fatalf("duplicate id after %d generations: %s", i, id)
		}
		seen[id] = true
	}
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"daily_tasks", "journal_entries", "theme", "daycraft_user", "bucket-list.v2"} {
		assert.NoError(t, core.ValidateKey(key), key)
	}
	for _, key := range []string{"", ".hidden", "../etc", "a/b", `a\b`, "with space"} {
		assert.ErrorIs(t, core.ValidateKey(key), core.ErrInvalidKey, key)
	}
}
