// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"github.com/ortelius/pdvd-changelog/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = InitLogger() // setup the logger

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// indexConfig describes a persistent index; more than one field makes it composite
type indexConfig struct {
	Collection string
	IdxName    string
	IdxFields  []string
}

// Document collections read by the changelog engine
var collectionNames = []string{"org", "component", "branch", "release", "artifact", "finding"}

// Edge collections linking a release to its SBOM entries and findings
var edgeCollectionNames = []string{"release2artifact", "release2finding"}

var idxList = []indexConfig{
	{Collection: "component", IdxName: "component_org", IdxFields: []string{"org"}},
	{Collection: "component", IdxName: "component_perspectives", IdxFields: []string{"perspectives[*]"}},
	{Collection: "branch", IdxName: "branch_component", IdxFields: []string{"component"}},
	{Collection: "release", IdxName: "release_branch_created", IdxFields: []string{"branch", "created_at"}},
	{Collection: "release", IdxName: "release_component", IdxFields: []string{"component"}},
	{Collection: "release", IdxName: "release_org", IdxFields: []string{"org"}},
	{Collection: "artifact", IdxName: "artifact_purl", IdxFields: []string{"purl"}},
	{Collection: "finding", IdxName: "finding_identity", IdxFields: []string{"kind", "id", "purl", "location"}},
	{Collection: "release2artifact", IdxName: "release2artifact_from", IdxFields: []string{"_from"}},
	{Collection: "release2artifact", IdxName: "release2artifact_to", IdxFields: []string{"_to"}},
	{Collection: "release2finding", IdxName: "release2finding_from", IdxFields: []string{"_from"}},
	{Collection: "release2finding", IdxName: "release2finding_to", IdxFields: []string{"_to"}},
}

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// InitializeDatabase connects to ArangoDB, retrying until it answers, and makes
// sure the database, collections and indexes exist.
func InitializeDatabase(ctx context.Context, cfg config.ArangoConfig) DBConnection {
	const initialInterval = 10 * time.Second
	const maxInterval = 2 * time.Minute

	var client arangodb.Client

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 0 // retry until the database is reachable

	err := backoff.RetryNotify(func() error {
		logger.Info("Attempting to connect to ArangoDB", zap.String("url", cfg.URL))
		endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, cfg.User, cfg.Pass))

		client = arangodb.NewClient(conn)

		versionInfo, err := client.Version(ctx)
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'", versionInfo.Version, versionInfo.License)
		return nil
	}, bo, func(err error, wait time.Duration) {
		logger.Warn("Retrying connection to ArangoDB", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		logger.Sugar().Fatalf("Backoff Error %v", err)
	}

	db := ensureDatabase(ctx, client, cfg.Database)

	collections := make(map[string]arangodb.Collection)
	for _, name := range collectionNames {
		collections[name] = ensureCollection(ctx, db, name, arangodb.CollectionTypeDocument)
	}
	for _, name := range edgeCollectionNames {
		collections[name] = ensureCollection(ctx, db, name, arangodb.CollectionTypeEdge)
	}

	for _, idx := range idxList {
		ensureIndex(ctx, collections[idx.Collection], idx)
	}

	return DBConnection{
		Database:    db,
		Collections: collections,
	}
}

func ensureDatabase(ctx context.Context, client arangodb.Client, name string) arangodb.Database {
	exists, err := client.DatabaseExists(ctx, name)
	if err != nil {
		logger.Sugar().Fatalf("Failed to look up Database: %v", err)
	}

	if exists {
		var options arangodb.GetDatabaseOptions
		db, err := client.GetDatabase(ctx, name, &options)
		if err != nil {
			logger.Sugar().Fatalf("Failed to get Database: %v", err)
		}
		return db
	}

	db, err := client.CreateDatabase(ctx, name, nil)
	if err != nil {
		logger.Sugar().Fatalf("Failed to create Database: %v", err)
	}
	return db
}

func ensureCollection(ctx context.Context, db arangodb.Database, name string, colType arangodb.CollectionType) arangodb.Collection {
	exists, _ := db.CollectionExists(ctx, name)
	if exists {
		var options arangodb.GetCollectionOptions
		col, err := db.GetCollection(ctx, name, &options)
		if err != nil {
			logger.Sugar().Fatalf("Failed to use collection %s: %v", name, err)
		}
		return col
	}

	col, err := db.CreateCollectionV2(ctx, name, &arangodb.CreateCollectionPropertiesV2{Type: &colType})
	if err != nil {
		logger.Sugar().Fatalf("Failed to create collection %s: %v", name, err)
	}
	return col
}

func ensureIndex(ctx context.Context, col arangodb.Collection, idx indexConfig) {
	if indexes, err := col.Indexes(ctx); err == nil {
		for _, index := range indexes {
			if idx.IdxName == index.Name {
				return
			}
		}
	}

	False := false
	indexOptions := arangodb.CreatePersistentIndexOptions{
		Unique: &False,
		Sparse: &False,
		Name:   idx.IdxName,
	}
	if _, _, err := col.EnsurePersistentIndex(ctx, idx.IdxFields, &indexOptions); err != nil {
		logger.Sugar().Fatalln("Error creating index:", err)
	}
	logger.Sugar().Infof("Created index: %s on %s%v", idx.IdxName, idx.Collection, idx.IdxFields)
}
