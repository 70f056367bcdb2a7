package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverNeo4j    = "neo4j"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Store    `mapstructure:"store"`
	Postgres `mapstructure:"postgres"`
	Mongo    `mapstructure:"mongo"`
	Neo4j    `mapstructure:"neo4j"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Store struct
type Store struct {
	Driver string `mapstructure:"driver"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Mongo struct
type Mongo struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
	Timeout    int    `mapstructure:"timeout"` // seconds
}

// Neo4j struct
type Neo4j struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.debug", false)
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.username", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.database", "todos")
	v.SetDefault("postgres.sslmode", false)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "todos")
	v.SetDefault("mongo.collection", "todos")
	v.SetDefault("mongo.timeout", 10)
	v.SetDefault("neo4j.uri", "neo4j://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "")
}

// Load reads config.yaml from path, then config.<env>.yaml when env is set.
// Environment variables override both (APP_PORT overrides app.port).
// Missing files are not an error: defaults apply.
func Load(path, env string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	found, err := read(v.ReadInConfig)
	if err != nil {
		return nil, err
	}
	if env != "" {
		v.SetConfigName("config." + env)
		if _, err := read(v.MergeInConfig); err != nil {
			return nil, err
		}
		v.Set("app.env", env)
	}
	if found {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			logrus.Infoln("Config file has changed: ", e.Name)
		})
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func read(fn func() error) (bool, error) {
	err := fn()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	return err == nil, err
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres, DriverMongo, DriverNeo4j:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
}
