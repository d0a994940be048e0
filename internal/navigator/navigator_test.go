package navigator

import (
	"strings"
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/terrain"
)

func openMap(t *testing.T) *terrain.Map {
	t.Helper()
	doc := `{"width":20,"height":20,"tileSize":32,"tiles":[` +
		strings.TrimSuffix(strings.Repeat(`[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],`, 20), ",") + `]}`
	m, err := terrain.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	return m
}

func TestUpdateInterpolatesWhenBothClear(t *testing.T) {
	tm := openMap(t)
	tuning := config.Default()
	origin := mathf.Vec2{X: 300, Y: 300}

	res := Update(tm, origin, 0, mathf.Normalize(1.0), nil, tuning, 1.0/60)
	if res.Stuck {
		t.Fatalf("open water should never report stuck")
	}
	if res.CurrentHeading == 0 {
		t.Fatalf("expected heading to move toward desired, stayed at 0")
	}
}

func TestUpdateHoldsCourseWhenOnlyDesiredBlocked(t *testing.T) {
	// Land directly east; desired heading points into it, current
	// heading (north) stays clear.
	doc := `{"width":10,"height":10,"tileSize":32,"tiles":[` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,2,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,0,0,0,0]]}`
	tm, err := terrain.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	tuning := config.Default()
	origin := mathf.Vec2{X: 16, Y: 208} // row 6, col 0; land at row6 col5

	east := mathf.Normalize(float32(mathf.Pi) / 2)
	north := mathf.Heading(0)

	res := Update(tm, origin, north, east, nil, tuning, 1.0/60)
	if res.CurrentHeading != north {
		t.Fatalf("expected to hold north course, got %v", res.CurrentHeading)
	}
}
