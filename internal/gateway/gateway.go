package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ironkeel/galleon-server/internal/cloud"
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/npc"
	"github.com/ironkeel/galleon-server/internal/sim"
	"github.com/ironkeel/galleon-server/internal/world"
)

const (
	npcSweepPeriod       = 5 * time.Second
	cloudTickerFloorPeriod = time.Second // only used if cloud.UpdatePeriod() is absurdly small
)

// signedInbound pairs a decoded message with the session that sent it.
type signedInbound struct {
	sess *ClientData
	msg  Inbound
}

// Gateway owns the simulation and every connected session. It is the
// sole goroutine that ever touches *world.World after construction.
type Gateway struct {
	World   *world.World
	Tuning  *config.Tuning
	Rewards *config.RewardTable
	Roles   *config.RoleTable
	Ships   *config.ShipClassTable
	NPC     *npc.Manager
	Cloud   cloud.Cloud

	clients    ClientList
	clientByID map[world.SessionID]Client
	byEntity   map[world.EntityID]Client

	register   chan Client
	unregister chan Client
	inbound    chan signedInbound

	clock func() float64

	perf *sim.PerfMonitor

	// statusJSON is the last player-count snapshot served by ServeIndex,
	// refreshed each time reportToCloud runs.
	statusJSON atomic.Value
}

// New builds a Gateway. startedAt anchors the wall-clock "now" every
// tick measures against; passing it in (rather than reading time.Now()
// internally) keeps tick timing and cloud config testable.
func New(w *world.World, tuning *config.Tuning, rewards *config.RewardTable, roles *config.RoleTable, ships *config.ShipClassTable, npcMgr *npc.Manager, cl cloud.Cloud, startedAt time.Time) *Gateway {
	if cl == nil {
		cl = cloud.Offline{}
	}
	return &Gateway{
		World:      w,
		Tuning:     tuning,
		Rewards:    rewards,
		Roles:      roles,
		Ships:      ships,
		NPC:        npcMgr,
		Cloud:      cl,
		clientByID: make(map[world.SessionID]Client),
		byEntity:   make(map[world.EntityID]Client),
		register:   make(chan Client, 8),
		unregister: make(chan Client, 8),
		inbound:    make(chan signedInbound, 64),
		clock:      func() float64 { return time.Since(startedAt).Seconds() },
		perf:       sim.NewPerfMonitor(startedAt),
	}
}

// Register asks the gateway goroutine to admit a new client. Safe to
// call from the HTTP handler goroutine that accepted the connection.
func (gw *Gateway) Register(c Client) {
	gw.register <- c
}

// postInbound routes a decoded non-input message onto the gateway's
// shared queue. Input messages skip this path entirely (see socket.go):
// they're coalesced directly into ClientData.PendingInput so a slow
// tick never backs up behind one-off commands.
func (gw *Gateway) postInbound(sess *ClientData, msg Inbound) {
	gw.inbound <- signedInbound{sess: sess, msg: msg}
}

// Run drives the gateway forever: registration, one-off message
// dispatch, and the fixed-rate simulation tick, all through one
// select loop.
func (gw *Gateway) Run() {
	tickTicker := time.NewTicker(config.TickPeriod)
	defer tickTicker.Stop()

	npcTicker := time.NewTicker(npcSweepPeriod)
	defer npcTicker.Stop()

	cloudTicker := time.NewTicker(gw.Cloud.UpdatePeriod())
	defer cloudTicker.Stop()

	for {
		select {
		case c := <-gw.register:
			gw.admit(c)

		case c := <-gw.unregister:
			gw.drop(c)

		case in := <-gw.inbound:
			// Re-check liveness: a session may have disconnected between
			// send and receive of this channel.
			if _, live := gw.clientByID[in.sess.SessionID]; live {
				in.msg.Process(gw, in.sess)
			}

		case t := <-tickTicker.C:
			gw.tick(t)

		case <-npcTicker.C:
			gw.NPC.Sweep(gw.World, gw.Tuning, gw.clock())

		case <-cloudTicker.C:
			gw.reportToCloud()
		}
	}
}

func (gw *Gateway) admit(c Client) {
	gw.clients.Add(c)
	data := c.Data()
	data.Gateway = gw
	data.EntityID = world.EntityIDInvalid
	if gw.clients.Len > gw.Tuning.MaxPlayers {
		c.Send(ServerFull{Message: "server is full", MaxPlayers: gw.Tuning.MaxPlayers})
		c.Destroy()
		return
	}
	gw.clientByID[data.SessionID] = c
	c.Init()
}

func (gw *Gateway) drop(c Client) {
	data := c.Data()
	if data.EntityID != world.EntityIDInvalid {
		gw.World.RemoveEntity(data.EntityID)
		delete(gw.byEntity, data.EntityID)
	}
	delete(gw.clientByID, data.SessionID)
	gw.clients.Remove(c)
	c.Close()
}

// tick drains each session's coalesced input into its entity, advances
// the simulation by one step, turns the step's reward/mission side
// effects into outbound messages, and broadcasts the new snapshot.
func (gw *Gateway) tick(t time.Time) {
	start := time.Now()
	now := gw.clock()

	for c := gw.clients.First; c != nil; c = c.Data().Next {
		data := c.Data()
		if data.EntityID == world.EntityIDInvalid {
			continue
		}
		if in := data.TakePendingInput(); in != nil {
			if e := gw.World.Entity(data.EntityID); e != nil {
				e.Input = *in
			}
		}
	}

	result := sim.Step(gw.World, gw.Rewards, now, float32(config.TickPeriod.Seconds()))
	gw.dispatchRewards(result)
	gw.dispatchMissions(result)
	gw.reindexEntities()

	snapshot := gw.buildGamestateUpdate(now)
	for c := gw.clients.First; c != nil; c = c.Data().Next {
		c.Send(snapshot)
	}

	gw.perf.Observe(t, time.Since(start))
}

// reindexEntities rebuilds the EntityID->Client lookup used to route
// reward/mission events, cheap at this scale (players are capped at 20)
// and simpler than threading incremental updates through every place an
// entity can be removed.
func (gw *Gateway) reindexEntities() {
	for id := range gw.byEntity {
		if gw.World.Entity(id) == nil {
			delete(gw.byEntity, id)
		}
	}
	for c := gw.clients.First; c != nil; c = c.Data().Next {
		data := c.Data()
		if data.EntityID != world.EntityIDInvalid {
			gw.byEntity[data.EntityID] = c
		}
	}
}

func (gw *Gateway) dispatchRewards(result sim.Result) {
	for _, r := range result.Rewards {
		c, ok := gw.byEntity[r.PlayerID]
		if !ok {
			continue
		}
		e := gw.World.Entity(r.PlayerID)
		if e == nil || e.Kind != world.KindPlayer {
			continue
		}
		c.Send(TransactionResult{Success: true, Message: "reward: " + r.Key})
	}
}

func (gw *Gateway) dispatchMissions(result sim.Result) {
	for _, m := range result.Missions {
		c, ok := gw.byEntity[m.PlayerID]
		if !ok {
			continue
		}
		c.Send(MissionComplete{Gold: m.Gold, XP: m.XP})
	}
}

// reportToCloud summarizes live players into a gold leaderboard and
// publishes a status snapshot for ServeIndex to serve.
func (gw *Gateway) reportToCloud() {
	if err := gw.Cloud.FlushStatistics(); err != nil {
		log.Printf("gateway: flush cloud statistics: %v", err)
	}

	playerGold := make(map[string]int)
	count := 0
	for c := gw.clients.First; c != nil; c = c.Data().Next {
		data := c.Data()
		if data.EntityID == world.EntityIDInvalid {
			continue
		}
		count++
		e := gw.World.Entity(data.EntityID)
		if e == nil {
			continue
		}
		if e.Player.Gold > playerGold[data.Name] {
			playerGold[data.Name] = e.Player.Gold
		}
	}

	go func() {
		if err := gw.Cloud.UpdateLeaderboard(playerGold); err != nil {
			log.Printf("gateway: update leaderboard: %v", err)
		}
	}()

	if err := gw.Cloud.UpdateServer(count); err != nil {
		log.Printf("gateway: update server heartbeat: %v", err)
	}

	statusJSON, err := json.Marshal(struct {
		Players int `json:"players"`
	}{Players: count})
	if err != nil {
		log.Printf("gateway: marshal status: %v", err)
	} else {
		gw.statusJSON.Store(statusJSON)
	}
}

// ServeIndex answers a bare HTTP GET with a small JSON status document
// (player count): this server has no HTML client to serve, only the
// status a load balancer or uptime check might poll for.
func (gw *Gateway) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if buf, ok := gw.statusJSON.Load().([]byte); ok {
		_, _ = w.Write(buf)
		return
	}
	_, _ = w.Write([]byte(`{"players":0}`))
}
