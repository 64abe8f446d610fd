package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKitColumnsFor(t *testing.T) {
	kc := KitColumnsFor(KitAway1)

	assert.Equal(t, "away1_shirt_design", kc.Design)
	assert.Equal(t, "away1_shirt_primary_r", kc.Channels[0])
	assert.Equal(t, "away1_shirt_secondary_g", kc.Channels[4])
	assert.Equal(t, "away1_shorts_b", kc.Channels[8])
	assert.Equal(t, "away1_socks_b", kc.Channels[11])
}

func TestTables(t *testing.T) {
	tests := []struct {
		table    Table
		columns  int
		required []string
	}{
		{Clubs, 6 + 3*13, []string{ClubID, ClubName}},
		{Players, 15 + 6 + 29, []string{PlayerClubID, ShortName, Overall}},
	}

	for _, tt := range tests {
		t.Run(tt.table.Key, func(t *testing.T) {
			headers := tt.table.Headers()
			assert.Len(t, headers, tt.columns)
			assert.Equal(t, tt.required, tt.table.RequiredHeaders())

			seen := make(map[string]bool, len(headers))
			for _, h := range headers {
				if seen[h] {
					t.Errorf("duplicate column %q", h)
				}
				seen[h] = true
			}
		})
	}
}

func TestTablesByKey(t *testing.T) {
	assert.Equal(t, "Clubs", Tables["clubs"].Label)
	assert.Equal(t, "Players", Tables["players"].Label)
	assert.Len(t, Tables, 2)

	_, ok := Tables["kits"]
	assert.False(t, ok, "kits are exported from a save, not imported")
}
