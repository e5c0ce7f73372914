// Package config - Loads service configuration from an optional YAML file and environment variables
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the complete service configuration
type Config struct {
	Arango    ArangoConfig    `yaml:"arango"`
	Server    ServerConfig    `yaml:"server"`
	Changelog ChangelogConfig `yaml:"changelog"`
	Kafka     KafkaConfig     `yaml:"kafka"`
}

// ArangoConfig holds the database connection settings
type ArangoConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"pass"`
	URL      string `yaml:"url"`
	Database string `yaml:"database"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port string `yaml:"port"`
}

// ChangelogConfig tunes the changelog engine
type ChangelogConfig struct {
	// Workers bounds how many components an organization request computes at once
	Workers int `yaml:"workers"`
	// TimeZone is used when a request does not name one
	TimeZone string `yaml:"time_zone"`
	// RequestTimeoutSeconds bounds one changelog computed by the event worker
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// KafkaConfig holds the event worker settings
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	APIKey       string   `yaml:"api_key"`
	APISecret    string   `yaml:"api_secret"`
	RequestTopic string   `yaml:"request_topic"`
	ResultTopic  string   `yaml:"result_topic"`
	GroupID      string   `yaml:"group_id"`
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Arango: ArangoConfig{
			Host:     "localhost",
			Port:     "8529",
			User:     "root",
			Pass:     "mypassword",
			Database: "vulnmgt",
		},
		Server:    ServerConfig{Port: "3000"},
		Changelog: ChangelogConfig{Workers: 10, TimeZone: "UTC", RequestTimeoutSeconds: 120},
		Kafka: KafkaConfig{
			Brokers:      []string{"localhost:9092"},
			RequestTopic: "changelog.requested",
			ResultTopic:  "changelog.computed",
			GroupID:      "pdvd-changelog-worker",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// PDVD_CONFIG (if any) and finally environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PDVD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "could not read config file %s", path)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "could not parse config file %s", path)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg
func Parse(data []byte, cfg *Config) error {
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) error {
	cfg.Arango.Host = GetEnvDefault("ARANGO_HOST", cfg.Arango.Host)
	cfg.Arango.Port = GetEnvDefault("ARANGO_PORT", cfg.Arango.Port)
	cfg.Arango.User = GetEnvDefault("ARANGO_USER", cfg.Arango.User)
	cfg.Arango.Pass = GetEnvDefault("ARANGO_PASS", cfg.Arango.Pass)
	cfg.Arango.URL = GetEnvDefault("ARANGO_URL", cfg.Arango.URL)
	cfg.Arango.Database = GetEnvDefault("ARANGO_DB", cfg.Arango.Database)
	if cfg.Arango.URL == "" {
		cfg.Arango.URL = "http://" + cfg.Arango.Host + ":" + cfg.Arango.Port
	}

	cfg.Server.Port = GetEnvDefault("PORT", cfg.Server.Port)

	if workers := os.Getenv("CHANGELOG_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 1 {
			return errors.Errorf("CHANGELOG_WORKERS must be a positive integer, got %q", workers)
		}
		cfg.Changelog.Workers = n
	}
	cfg.Changelog.TimeZone = GetEnvDefault("CHANGELOG_TIME_ZONE", cfg.Changelog.TimeZone)
	if timeout := os.Getenv("CHANGELOG_REQUEST_TIMEOUT_SECONDS"); timeout != "" {
		n, err := strconv.Atoi(timeout)
		if err != nil || n < 1 {
			return errors.Errorf("CHANGELOG_REQUEST_TIMEOUT_SECONDS must be a positive integer, got %q", timeout)
		}
		cfg.Changelog.RequestTimeoutSeconds = n
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Kafka.APIKey = GetEnvDefault("KAFKA_API_KEY", cfg.Kafka.APIKey)
	cfg.Kafka.APISecret = GetEnvDefault("KAFKA_API_SECRET", cfg.Kafka.APISecret)
	cfg.Kafka.RequestTopic = GetEnvDefault("KAFKA_REQUEST_TOPIC", cfg.Kafka.RequestTopic)
	cfg.Kafka.ResultTopic = GetEnvDefault("KAFKA_RESULT_TOPIC", cfg.Kafka.ResultTopic)
	cfg.Kafka.GroupID = GetEnvDefault("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	return nil
}
