package world

// Input is the bitfield of intents a client (or NPC behavior step) feeds
// into ship kinematics for one tick.
type Input struct {
	Left, Right        bool
	SailUp, SailDown   bool
	ShootLeft, ShootRight bool
}
