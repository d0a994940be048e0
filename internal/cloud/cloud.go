// Package cloud is the optional AWS-backed deployment boundary: a
// leaderboard persisted to DynamoDB, a status/leaderboard snapshot
// pushed to S3, and this server's address published via Route53. A
// server started without cloud configuration runs Offline, an explicit
// no-op implementation of the Cloud interface rather than a nil
// interface value (Go can't dispatch through a nil receiver as safely).
package cloud

import (
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/ironkeel/galleon-server/internal/cloud/db"
	"github.com/ironkeel/galleon-server/internal/cloud/dns"
	"github.com/ironkeel/galleon-server/internal/cloud/fs"
)

// UpdatePeriod is how often the caller should invoke UpdateServer and
// IncrementPlayerStatistic/FlushStatistics.
const UpdatePeriod = 30 * time.Second

// Cloud is the deployment boundary the gateway reports into.
type Cloud interface {
	fmt.Stringer
	UpdateServer(players int) error
	IncrementPlayerStatistic()
	FlushStatistics() error
	UpdateLeaderboard(playerGold map[string]int) error
	UploadStatusSnapshot(data []byte) error
	UpdatePeriod() time.Duration
}

// Offline is the no-op Cloud used when no deployment config is present.
type Offline struct{}

func (Offline) String() string                              { return "offline" }
func (Offline) UpdateServer(players int) error               { return nil }
func (Offline) IncrementPlayerStatistic()                    {}
func (Offline) FlushStatistics() error                       { return nil }
func (Offline) UpdateLeaderboard(playerGold map[string]int) error { return nil }
func (Offline) UploadStatusSnapshot(data []byte) error        { return nil }
func (Offline) UpdatePeriod() time.Duration                   { return time.Hour }

// AWSCloud is the DynamoDB/S3/Route53-backed implementation.
type AWSCloud struct {
	ip       net.IP
	database db.Database
	dns      dns.DNS
	fs       fs.Filesystem

	newPlayers int
}

// Config names the environment-driven settings a single-server AWS
// deployment needs. The caller builds it from flags or env vars (see
// cmd/galleon-server).
type Config struct {
	Region        string
	Stage         string
	Domain        string
	Route53ZoneID string
}

// New builds an AWSCloud from cfg, or returns an error if the AWS
// session, database, DNS, or filesystem cannot be constructed.
func New(cfg Config) (*AWSCloud, error) {
	ip, err := publicIP()
	if err != nil {
		return nil, fmt.Errorf("cloud: determine public ip: %w", err)
	}

	sess, err := awsSession(cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("cloud: aws session: %w", err)
	}

	database, err := db.NewDynamoDBDatabase(sess, cfg.Stage)
	if err != nil {
		return nil, fmt.Errorf("cloud: dynamodb: %w", err)
	}
	route53DNS, err := dns.NewRoute53DNS(sess, cfg.Domain, cfg.Route53ZoneID)
	if err != nil {
		return nil, fmt.Errorf("cloud: route53: %w", err)
	}
	s3fs, err := fs.NewS3Filesystem(sess, cfg.Stage)
	if err != nil {
		return nil, fmt.Errorf("cloud: s3: %w", err)
	}

	c := &AWSCloud{ip: ip, database: database, dns: route53DNS, fs: s3fs}
	if err := c.dns.UpdateRoute(c.ip); err != nil {
		return nil, fmt.Errorf("cloud: publish dns route: %w", err)
	}
	if err := c.UpdateServer(0); err != nil {
		return nil, fmt.Errorf("cloud: initial server heartbeat: %w", err)
	}
	return c, nil
}

func (c *AWSCloud) String() string {
	return fmt.Sprintf("[%s]", c.ip)
}

func (c *AWSCloud) UpdateServer(players int) error {
	return c.database.UpdateServer(db.Server{
		IP:      c.ip,
		Players: players,
		TTL:     time.Now().Unix() + int64(UpdatePeriod/time.Second) + 5,
	})
}

func (c *AWSCloud) IncrementPlayerStatistic() {
	c.newPlayers++
}

func (c *AWSCloud) FlushStatistics() error {
	// No external analytics endpoint is wired for this deployment; the
	// counter only exists so UpdateServer's player count and the
	// per-tick join rate can be correlated later if one is added.
	c.newPlayers = 0
	return nil
}

func (c *AWSCloud) UpdateLeaderboard(playerGold map[string]int) (err error) {
	dbScores, err := c.database.ReadScores()
	if err != nil {
		return err
	}

	type entry struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	leaderboard := make(map[string][]entry)
	thresholds := make(map[string]int)

	for _, s := range dbScores {
		leaderboard[s.Type] = append(leaderboard[s.Type], entry{Name: s.Name, Score: s.Score})
	}
	for scoreType, scores := range leaderboard {
		sort.Slice(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
		const thresholdIndex = 15
		if len(scores) > thresholdIndex {
			thresholds[scoreType] = scores[thresholdIndex].Score
		}
		const max = 10
		if len(scores) > max {
			leaderboard[scoreType] = scores[:max]
		}
	}

	now := time.Now().Unix()
	const day = 60 * 60 * 24
	ttlDay := now + day
	ttlWeek := now + day*7

	for name, gold := range playerGold {
		if gold > thresholds["gold/all"] {
			if err = c.database.UpdateScore(db.Score{Type: "gold/all", Name: name, Score: gold}); err != nil {
				return err
			}
		}
		if gold > thresholds["gold/week"] {
			if err = c.database.UpdateScore(db.Score{Type: "gold/week", Name: name, Score: gold, TTL: ttlWeek}); err != nil {
				return err
			}
		}
		if gold > thresholds["gold/day"] {
			if err = c.database.UpdateScore(db.Score{Type: "gold/day", Name: name, Score: gold, TTL: ttlDay}); err != nil {
				return err
			}
		}
	}

	leaderboardJSON, err := json.Marshal(leaderboard)
	if err != nil {
		return err
	}
	return c.fs.UploadStaticFile("leaderboard.json", 10, leaderboardJSON)
}

func (c *AWSCloud) UploadStatusSnapshot(data []byte) error {
	return c.fs.UploadStaticFile("status.json", 5, data)
}

func (c *AWSCloud) UpdatePeriod() time.Duration {
	return UpdatePeriod
}
