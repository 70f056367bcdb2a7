package neo4jdb

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
)

// ConnectToNeo4j initializes the Neo4j driver and verifies it can reach the server
func ConnectToNeo4j(ctx context.Context, uri, username, password string) (neo4j.DriverWithContext, error) {
	if uri == "" {
		return nil, errors.New("cannot estabished the connection: empty neo4j uri")
	}
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		logrus.Error(err)
		_ = driver.Close(ctx)
		return nil, err
	}
	logrus.Info("Connected with neo4j at ", uri)
	return driver, nil
}
