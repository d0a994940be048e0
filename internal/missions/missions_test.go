package missions

import (
	"strings"
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

func newPlayer(pos mathf.Vec2) *world.Entity {
	return &world.Entity{
		Kind:     world.KindPlayer,
		Position: pos,
		Player:   &world.PlayerState{},
	}
}

func newHarborRegistry(t *testing.T, id harbor.ID, x, y, radius float32) *harbor.Registry {
	t.Helper()
	doc := `[{"id":1,"tileX":0,"tileY":0,"tileSize":1,"name":"Port","islandId":1,"exitDirection":{"x":0,"y":-1},"radius":` +
		ftoa(radius) + `}]`
	reg, err := harbor.Load(strings.NewReader(doc), 1)
	if err != nil {
		t.Fatalf("load harbor: %v", err)
	}
	h := reg.Get(1)
	h.Position = mathf.Vec2{X: x, Y: y}
	return reg
}

func ftoa(f float32) string {
	n := int(f)
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func rewardTable(t *testing.T) *config.RewardTable {
	t.Helper()
	rt, err := config.DefaultRewards()
	if err != nil {
		t.Fatalf("load rewards: %v", err)
	}
	return rt
}

func TestSailToHarborCompletesOnArrival(t *testing.T) {
	reg := newHarborRegistry(t, 1, 100, 100, 50)
	p := newPlayer(mathf.Vec2{X: 100, Y: 100})
	Assign(p, &world.Mission{Kind: world.MissionSailToHarbor, State: world.MissionActive, TargetHarborID: 1, RewardKey: "MISSION.SAIL_TO_HARBOR"})

	res := Update(p, Context{Harbors: reg, DT: 1.0 / 60}, rewardTable(t))
	if !res.Completed {
		t.Fatalf("expected mission to complete on arrival")
	}
	if p.Player.Gold == 0 || p.Player.XP == 0 {
		t.Fatalf("expected gold/xp payout, got gold=%d xp=%d", p.Player.Gold, p.Player.XP)
	}
	if p.Player.Mission != nil {
		t.Fatalf("expected mission to be cleared after completion")
	}
}

func TestSailToHarborStaysActiveWhileFar(t *testing.T) {
	reg := newHarborRegistry(t, 1, 1000, 1000, 50)
	p := newPlayer(mathf.Vec2{X: 0, Y: 0})
	Assign(p, &world.Mission{Kind: world.MissionSailToHarbor, State: world.MissionActive, TargetHarborID: 1, RewardKey: "MISSION.SAIL_TO_HARBOR"})

	res := Update(p, Context{Harbors: reg, DT: 1.0 / 60}, rewardTable(t))
	if res.Completed || res.Failed {
		t.Fatalf("expected mission to remain active while far from target")
	}
	if p.Player.Mission == nil {
		t.Fatalf("expected mission to remain assigned")
	}
}

func TestDefeatNPCsCompletesAtRequiredKills(t *testing.T) {
	p := newPlayer(mathf.Vec2{})
	Assign(p, &world.Mission{Kind: world.MissionDefeatNPCs, State: world.MissionActive, RequiredKills: 2, RewardKey: "MISSION.DEFEAT_NPCS"})

	RecordKill(p)
	res := Update(p, Context{DT: 1.0 / 60}, rewardTable(t))
	if res.Completed {
		t.Fatalf("did not expect completion after only one kill")
	}

	RecordKill(p)
	res = Update(p, Context{DT: 1.0 / 60}, rewardTable(t))
	if !res.Completed {
		t.Fatalf("expected completion after required kill count reached")
	}
}

func TestStayInAreaResetsOnExit(t *testing.T) {
	p := newPlayer(mathf.Vec2{X: 0, Y: 0})
	Assign(p, &world.Mission{
		Kind:            world.MissionStayInArea,
		State:           world.MissionActive,
		AreaCenter:      mathf.Vec2{X: 0, Y: 0},
		AreaRadius:      50,
		RequiredSeconds: 1,
		RewardKey:       "MISSION.STAY_IN_AREA",
	})

	res := Update(p, Context{DT: 0.5}, rewardTable(t))
	if res.Completed {
		t.Fatalf("should not complete after only half the required time")
	}

	p.Position = mathf.Vec2{X: 1000, Y: 1000}
	Update(p, Context{DT: 0.1}, rewardTable(t))
	if p.Player.Mission.ElapsedInArea != 0 {
		t.Fatalf("expected elapsed time to reset on leaving the area, got %v", p.Player.Mission.ElapsedInArea)
	}
}

func TestEscortSucceedsWhenTargetDespawnsAlive(t *testing.T) {
	escort := &world.Entity{
		EntityID: 5,
		Kind:     world.KindNPC,
		Fleet:    &world.Fleet{Ships: []world.Ship{{Health: 10}}},
		NPC:      &world.NPCState{AIState: world.AIDespawning},
	}
	p := newPlayer(mathf.Vec2{})
	Assign(p, &world.Mission{Kind: world.MissionEscort, State: world.MissionActive, EscortTargetID: 5, RewardKey: "MISSION.ESCORT"})

	res := Update(p, Context{AllEntities: []*world.Entity{escort}, DT: 1.0 / 60}, rewardTable(t))
	if !res.Completed {
		t.Fatalf("expected escort success when escorted NPC despawns without sinking")
	}
}

func TestEscortFailsWhenTargetSinks(t *testing.T) {
	escort := &world.Entity{
		EntityID: 5,
		Kind:     world.KindNPC,
		Fleet:    &world.Fleet{Ships: []world.Ship{{Health: 0, Sunk: true}}},
		NPC:      &world.NPCState{AIState: world.AIDespawning},
	}
	p := newPlayer(mathf.Vec2{})
	Assign(p, &world.Mission{Kind: world.MissionEscort, State: world.MissionActive, EscortTargetID: 5, RewardKey: "MISSION.ESCORT"})

	res := Update(p, Context{AllEntities: []*world.Entity{escort}, DT: 1.0 / 60}, rewardTable(t))
	if !res.Failed {
		t.Fatalf("expected escort failure when escorted NPC sinks")
	}
}
