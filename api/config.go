package api

import (
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	EventConfig
}

type StorageConfig struct {
	// Backend is "file", "dynamo", "s3", "redis", "sqlite" or "postgres".
	Backend   string
	DataDir   string
	TableName string
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	RedisAddr string
	DSN       string
}

type ServerConfig struct {
	Port      int
	Mode      string
	LogLevel  string
	LogFormat string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminToken    string
	AdminUsername string
	AdminPassword string

	// LoginRate is the sustained login attempts per second allowed per client IP.
	LoginRate  float64
	LoginBurst int
}

// EventConfig seeds the score weights before an admin sets them.
type EventConfig struct {
	JudgesWeight   float64
	AudienceWeight float64
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Backend:   getStringOrDefault("storage.backend", "file"),
			DataDir:   getStringOrDefault("storage.dataDir", "./data"),
			TableName: getStringOrDefault("storage.tableName", "VotingDocuments"),
			Bucket:    getStringOrDefault("storage.bucket", ""),
			Prefix:    getStringOrDefault("storage.prefix", ""),
			Region:    getStringOrDefault("storage.region", ""),
			Endpoint:  getStringOrDefault("storage.endpoint", ""),
			RedisAddr: getStringOrDefault("storage.redisAddr", "localhost:6379"),
			DSN:       getStringOrDefault("storage.dsn", ""),
		},
		ServerConfig: ServerConfig{
			Port:      getIntOrDefault("server.port", 5000),
			Mode:      getStringOrDefault("server.mode", "debug"),
			LogLevel:  getStringOrDefault("log.level", "debug"),
			LogFormat: getStringOrDefault("log.format", "text"),
		},
		AuthConfig: AuthConfig{
			JWTSecret:     getString("auth.jwtSecret"),
			TokenTTL:      getDurationOrDefault("auth.tokenTTL", 24*time.Hour),
			AdminToken:    getStringOrDefault("auth.adminToken", ""),
			AdminUsername: getStringOrDefault("auth.adminUsername", ""),
			AdminPassword: getStringOrDefault("auth.adminPassword", ""),
			LoginRate:     getFloatOrDefault("auth.loginRate", 5),
			LoginBurst:    getIntOrDefault("auth.loginBurst", 10),
		},
		EventConfig: EventConfig{
			JudgesWeight:   getFloatOrDefault("event.judges", 70),
			AudienceWeight: getFloatOrDefault("event.audience", 30),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getFloatOrDefault(name string, def float64) float64 {
	if viper.IsSet(name) {
		v := viper.GetFloat64(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
