package architecture

import (
	"encoding/json"
	"testing"

	"qirc/internal/testutil"
)

func TestSquareGridGoldenJSON(t *testing.T) {
	g := NewSquareGrid(2, 2, 1)
	data, err := json.Marshal(g.Architecture)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	testutil.Golden(t, "grid_2x2", data)
}
