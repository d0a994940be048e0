package kinematics

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/terrain"
	"github.com/ironkeel/galleon-server/internal/wind"
	"github.com/ironkeel/galleon-server/internal/world"
)

func allWaterMap(t *testing.T, w, h int, tileSize float32) *terrain.Map {
	t.Helper()
	row := strings.TrimSuffix(strings.Repeat("0,", w), ",")
	rows := make([]string, h)
	for i := range rows {
		rows[i] = "[" + row + "]"
	}
	doc := fmt.Sprintf(`{"width":%d,"height":%d,"tileSize":%v,"tiles":[%s]}`, w, h, tileSize, strings.Join(rows, ","))

	m, err := terrain.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	return m
}

func newTestEnv(t *testing.T) Environment {
	t.Helper()
	tuning := config.Default()
	tm := allWaterMap(t, 64, 64, 32)
	rng := rand.New(rand.NewSource(1))
	w := wind.New(rng, tuning)
	return Environment{Tuning: tuning, Terrain: tm, Wind: w, WorldWidth: tm.WorldWidth(), WorldHeight: tm.WorldHeight()}
}

func newTestEntity(t *testing.T) *world.Entity {
	t.Helper()
	classes, err := config.DefaultShipClasses()
	if err != nil {
		t.Fatalf("load ship classes: %v", err)
	}
	cls := classes.Get("sloop")
	return &world.Entity{
		Fleet:     world.NewFleet(cls),
		Position:  mathf.Vec2{X: 200, Y: 200},
		Heading:   0,
		SailState: 2,
	}
}

func TestRotationStaysNormalized(t *testing.T) {
	env := newTestEnv(t)
	e := newTestEntity(t)
	e.Input.Right = true

	for i := 0; i < 10000; i++ {
		Update(e, env, 1.0/60)
		if float32(e.Heading) <= -float32(mathf.Pi) || float32(e.Heading) > float32(mathf.Pi) {
			t.Fatalf("heading left (-pi, pi] at step %d: %v", i, e.Heading)
		}
	}
}

func TestSpeedNeverExceedsMax(t *testing.T) {
	env := newTestEnv(t)
	e := newTestEntity(t)

	for i := 0; i < 600; i++ {
		Update(e, env, 1.0/60)
		if e.Speed > e.Flagship().Class.MaxSpeed+1e-3 {
			t.Fatalf("speed %v exceeds max %v at step %d", e.Speed, e.Flagship().Class.MaxSpeed, i)
		}
		if e.Speed < 0 {
			t.Fatalf("speed went negative at step %d", i)
		}
	}
}

func TestLandContactSuppressesMovement(t *testing.T) {
	env := newTestEnv(t)
	// A single LAND tile directly in the entity's path.
	docJSON := `{"width":4,"height":4,"tileSize":32,"tiles":[[0,0,0,0],[0,0,2,0],[0,0,0,0],[0,0,0,0]]}`
	tm, err := terrain.Load(strings.NewReader(docJSON))
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	env.Terrain = tm
	env.WorldWidth = tm.WorldWidth()
	env.WorldHeight = tm.WorldHeight()

	e := newTestEntity(t)
	e.Position = mathf.Vec2{X: 20, Y: 40} // row 1, land tile at col 2
	e.Heading = mathf.Normalize(float32(mathf.Pi) / 2)

	for i := 0; i < 300; i++ {
		Update(e, env, 1.0/60)
		if env.Terrain.GetTile(e.Position.X, e.Position.Y) == terrain.Land {
			t.Fatalf("entity position landed on a LAND tile at step %d", i)
		}
	}
}

func TestNPCDespawnsAfterRepeatedLandContact(t *testing.T) {
	env := newTestEnv(t)
	docJSON := `{"width":4,"height":4,"tileSize":32,"tiles":[[0,0,2,0],[0,0,2,0],[0,0,2,0],[0,0,2,0]]}`
	tm, err := terrain.Load(strings.NewReader(docJSON))
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	env.Terrain = tm
	env.WorldWidth = tm.WorldWidth()
	env.WorldHeight = tm.WorldHeight()

	e := newTestEntity(t)
	e.Kind = world.KindNPC
	e.NPC = &world.NPCState{}
	e.Position = mathf.Vec2{X: 20, Y: 20}
	e.Heading = mathf.Normalize(float32(mathf.Pi) / 2) // east, straight into the land column

	despawned := false
	for i := 0; i < env.Tuning.MaxConsecutiveLandHits+5; i++ {
		Update(e, env, 1.0)
		if e.NPC.AIState == world.AIDespawning {
			despawned = true
			break
		}
	}
	if !despawned {
		t.Fatalf("expected NPC to be marked DESPAWNING after %d consecutive land hits", env.Tuning.MaxConsecutiveLandHits)
	}
}
