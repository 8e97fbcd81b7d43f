package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MatchingConfig carries the fuzzy-matching score boundaries. The
// defaults were tuned against labeled product pairs for precision over
// recall; retuning happens here, never in the matching code.
type MatchingConfig struct {
	MatchThreshold int // minimum token-sort score for a fuzzy match
	AmbiguousFloor int // lowest score accepted with exactly equal quantities
	AmbiguousCeil  int // scores below this require exactly equal quantities
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MATCH_THRESHOLD", 87)
	viper.SetDefault("MATCH_AMBIGUOUS_FLOOR", 85)
	viper.SetDefault("MATCH_AMBIGUOUS_CEIL", 90)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Matching: MatchingConfig{
			MatchThreshold: viper.GetInt("MATCH_THRESHOLD"),
			AmbiguousFloor: viper.GetInt("MATCH_AMBIGUOUS_FLOOR"),
			AmbiguousCeil:  viper.GetInt("MATCH_AMBIGUOUS_CEIL"),
		},
	}
}
