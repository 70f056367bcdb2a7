package protocal

import (
	"context"
	"time"

	"todo-htmx/configs"
	"todo-htmx/internal/adapters/output/memory"
	mongoAdapter "todo-htmx/internal/adapters/output/mongo"
	neo4jAdapter "todo-htmx/internal/adapters/output/neo4j"
	"todo-htmx/internal/adapters/output/postgres"
	"todo-htmx/internal/ports/output"
	"todo-htmx/pkg/database_driver/gorm"
	"todo-htmx/pkg/database_driver/mongodb"
	"todo-htmx/pkg/database_driver/neo4jdb"

	"github.com/sirupsen/logrus"
)

// OpenStore connects the todo store selected by store.driver.
// Stores with a schema are migrated before they are returned.
func OpenStore(ctx context.Context, cfg *configs.Config) (output.TodoRepository, error) {
	logrus.Info("Opening store: ", cfg.Store.Driver)
	switch cfg.Store.Driver {
	case configs.DriverPostgres:
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.DbName,
			cfg.Postgres.SSLMode,
		)
		if err != nil {
			return nil, err
		}
		return postgres.NewTodoRepository(dbConGorm.Postgres)

	case configs.DriverMongo:
		timeout := time.Duration(cfg.Mongo.Timeout) * time.Second
		client, err := mongodb.ConnectToMongo(ctx, cfg.Mongo.URI, timeout)
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return mongoAdapter.NewTodoRepository(coll), nil

	case configs.DriverNeo4j:
		driver, err := neo4jdb.ConnectToNeo4j(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password)
		if err != nil {
			return nil, err
		}
		repo := neo4jAdapter.NewTodoRepository(driver, cfg.Neo4j.Database)
		if err := repo.Migrate(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		return repo, nil

	default:
		return memory.NewTodoRepository(), nil
	}
}

// Migrate opens the configured store, which applies its schema, then closes it
func Migrate(ctx context.Context, cfg *configs.Config) error {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	logrus.Info("Schema is up to date for ", cfg.Store.Driver)
	return store.Close(ctx)
}
