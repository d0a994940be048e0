// Command galleon-server is the process entrypoint: it parses flags,
// loads the immutable data tables and terrain/harbor assets, builds the
// world and gateway, and serves websocket connections. It falls back to
// an Offline cloud when no deployment config is present, caps inbound
// connections with netutil.LimitListener, and registers the index and
// socket routes with the standard mux.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"golang.org/x/net/netutil"

	"github.com/ironkeel/galleon-server/internal/cloud"
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/gateway"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/npc"
	"github.com/ironkeel/galleon-server/internal/terrain"
	"github.com/ironkeel/galleon-server/internal/world"
)

func main() {
	var (
		port           int
		maxPlayers     int
		maxConnections int
		worldMapPath   string
		harborsPath    string
		seed           int64

		awsRegion string
		awsStage  string
		domain    string
		zoneID    string
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxPlayers, "max-players", 20, "maximum concurrent players")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.StringVar(&worldMapPath, "world-map", "assets/world_map.json", "path to the terrain tilemap JSON")
	flag.StringVar(&harborsPath, "harbors", "assets/harbors.json", "path to the harbors JSON")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks a random seed)")

	flag.StringVar(&awsRegion, "aws-region", "", "AWS region (enables cloud reporting when set)")
	flag.StringVar(&awsStage, "aws-stage", "unknown", "deployment stage tag for cloud tables/buckets")
	flag.StringVar(&domain, "domain", "", "public domain name published to Route53")
	flag.StringVar(&zoneID, "route53-zone", "", "Route53 hosted zone id")
	flag.Parse()

	if maxPlayers <= 0 {
		log.Fatalf("invalid -max-players: %d", maxPlayers)
	}

	tuning := config.Default()
	tuning.MaxPlayers = maxPlayers

	tm, err := terrain.LoadFile(worldMapPath)
	if err != nil {
		log.Fatalf("galleon-server: load world map: %v", err)
	}

	harbors, err := harbor.LoadFile(harborsPath, tm.TileSize())
	if err != nil {
		log.Fatalf("galleon-server: load harbors: %v", err)
	}

	ships, err := config.DefaultShipClasses()
	if err != nil {
		log.Fatalf("galleon-server: load ship classes: %v", err)
	}
	roles, err := config.DefaultRoles()
	if err != nil {
		log.Fatalf("galleon-server: load roles: %v", err)
	}
	rewards, err := config.DefaultRewards()
	if err != nil {
		log.Fatalf("galleon-server: load rewards: %v", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := world.New(tuning, tm, harbors, rng)

	npcMgr := npc.NewManager(roles, ships, []npc.RoleQuota{
		{Role: "TRADER", Target: 6},
		{Role: "PIRATE", Target: 4},
		{Role: "PATROL", Target: 3},
	})

	var cl cloud.Cloud = cloud.Offline{}
	if awsRegion != "" {
		awsCloud, err := cloud.New(cloud.Config{
			Region:        awsRegion,
			Stage:         awsStage,
			Domain:        domain,
			Route53ZoneID: zoneID,
		})
		if err != nil {
			// Cloud reporting is not required for the simulation to run;
			// fall back to offline rather than aborting startup.
			log.Printf("galleon-server: cloud init failed, running offline: %v", err)
		} else {
			cl = awsCloud
		}
	}

	startedAt := time.Now()
	gw := gateway.New(w, tuning, rewards, roles, ships, npcMgr, cl, startedAt)

	go gw.Run()

	log.Printf("galleon-server: simulation started (seed=%d, tick=%dHz)", seed, config.TickRate)

	http.HandleFunc("/", gw.ServeIndex)
	http.HandleFunc("/ws", gw.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		log.Fatalf("galleon-server: listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Printf("galleon-server: listening on :%d", port)
	if err := http.Serve(l, nil); err != nil {
		log.Println("galleon-server: serve:", err)
		os.Exit(1)
	}
}
