package config

import (
	"os"
	"time"
)

type Config struct {
	Port            string
	ServiceName     string
	JaegerAddress   string
	CassDB          string
	MongoURI        string
	RedisHost       string
	RedisPort       string
	Store           string
	LockWait        time.Duration
	NotificationURL string
	LogFile         string
}

func GetConfig() Config {
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}

	store := os.Getenv("INVENTORY_STORE")
	if len(store) == 0 {
		store = "memory"
	}

	lockWait := 3 * time.Second
	if raw := os.Getenv("LOCK_WAIT"); len(raw) != 0 {
		if parsed, err := time.ParseDuration(raw); err == nil {
			lockWait = parsed
		}
	}

	logFile := os.Getenv("LOG_FILE")
	if len(logFile) == 0 {
		logFile = "/inventory-service/logs/logfile.log"
	}

	return Config{
		Port:            port,
		ServiceName:     "inventory-service",
		JaegerAddress:   os.Getenv("JAEGER_ADDRESS"),
		CassDB:          os.Getenv("CASS_DB"),
		MongoURI:        os.Getenv("MONGO_DB_URI"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       os.Getenv("REDIS_PORT"),
		Store:           store,
		LockWait:        lockWait,
		NotificationURL: os.Getenv("NOTIFICATION_URL"),
		LogFile:         logFile,
	}
}
