package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

// DynamoDBDatabase implements Database against two DynamoDB tables: one
// for leaderboard scores, one for server liveness records.
type DynamoDBDatabase struct {
	svc          *dynamodb.DynamoDB
	db           *dynamo.DB
	scoresTable  dynamo.Table
	serverTable  dynamo.Table
}

// NewDynamoDBDatabase opens the scores/server tables for the given
// deployment stage ("dev", "prod", ...).
func NewDynamoDBDatabase(sess *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(sess)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.scoresTable = ddb.db.Table("galleon-" + stage + "-scores")
	ddb.serverTable = ddb.db.Table("galleon-" + stage + "-server")
	return ddb, nil
}

func (ddb *DynamoDBDatabase) UpdateScore(score Score) error {
	err := ddb.scoresTable.Put(score).If("attribute_not_exists(score) OR score < ?", score.Score).Run()
	if _, ok := err.(*dynamodb.ConditionalCheckFailedException); ok {
		return nil
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadScores() (scores []Score, err error) {
	query := ddb.scoresTable.Scan().Iter()
	for {
		var score Score
		if !query.Next(&score) {
			err = query.Err()
			return
		}
		scores = append(scores, score)
	}
}

func (ddb *DynamoDBDatabase) ReadScoresByType(scoreType string) (scores []Score, err error) {
	query := ddb.scoresTable.Get("type", scoreType).Iter()
	for {
		var score Score
		if !query.Next(&score) {
			err = query.Err()
			return
		}
		scores = append(scores, score)
	}
}

func (ddb *DynamoDBDatabase) UpdateServer(server Server) error {
	return ddb.serverTable.Put(server).Run()
}
