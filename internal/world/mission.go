package world

import (
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
)

// MissionKind tags the active variant of a player's mission.
type MissionKind uint8

const (
	MissionSailToHarbor MissionKind = iota
	MissionEscort
	MissionDefeatNPCs
	MissionStayInArea
)

// MissionState is the lifecycle stage of a mission.
type MissionState uint8

const (
	MissionActive MissionState = iota
	MissionSuccess
	MissionFailed
)

// Mission is the single active objective tracked for one player. The
// mission type itself lives in world (not a dedicated missions package)
// so that PlayerState can hold a pointer to one without world importing
// the package that runs mission transition logic.
type Mission struct {
	Kind  MissionKind
	State MissionState

	RewardKey string

	// TargetHarborID is used by SAIL_TO_HARBOR.
	TargetHarborID harbor.ID

	// EscortTargetID is used by ESCORT: the NPC entity being escorted.
	EscortTargetID EntityID

	// RequiredKills/Kills are used by DEFEAT_NPCS.
	RequiredKills int
	Kills         int

	// AreaCenter/AreaRadius/ElapsedInArea/RequiredSeconds are used by
	// STAY_IN_AREA.
	AreaCenter      mathf.Vec2
	AreaRadius      float32
	ElapsedInArea   float32
	RequiredSeconds float32
}
