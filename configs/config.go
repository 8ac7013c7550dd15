package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	SERVICE_NAME string
	SERVER_PORT  string
	LOG_LEVEL    string
	OTEL_URL     string
	WORKER_POOL  string

	DB_URI                   string
	DB_NAME                  string
	DB_MAXPOOLSIZE           uint64
	DB_MINPOOLSIZE           uint64
	DB_MAXIDLETIME_INMINUTES int

	LOAN_PERIOD_DAYS                   int
	FINE_PER_DAY                       int64
	RESERVATION_SWEEP_INTERVAL_SECONDS int
	NOTIFICATION_TTL_IN_HOURS          int
	SESSION_TTL_MINUTES                int
	TIMEOUT_IN_SECONDS                 int

	REDIS_ADDR                    string
	REDIS_PASSWORD                string
	REDIS_DB                      int
	REDIS_ENABLE_TLS              bool
	REDIS_CONNECT_TIMEOUT_SECONDS int
	REDIS_CERT_CONTENT            string

	KAFKA_SERVER             string
	KAFKA_SECURITY_PROTOCOL  string
	KAFKA_SASL_MECHANISM     string
	KAFKA_SASL_USERNAME      string
	KAFKA_SASL_PASSWORD      string
	KAFKA_SESSION_TIMEOUT_MS int
	KAFKA_CLIENT_ID          string
	KAFKA_TOPIC              string

	PROJECT_ID   string
	PUBSUB_TOPIC string
)

type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// AppConfig mirrors the optional YAML config file. Values present in the file
// override the environment-derived defaults.
type AppConfig struct {
	Server struct {
		ServiceName string `yaml:"service_name"`
		Port        string `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Circulation struct {
		LoanPeriodDays       int   `yaml:"loan_period_days"`
		FinePerDay           int64 `yaml:"fine_per_day"`
		SweepIntervalSeconds int   `yaml:"sweep_interval_seconds"`
	} `yaml:"circulation"`
	PubSub struct {
		ProjectID string `yaml:"project_id"`
		Topic     string `yaml:"topic"`
	} `yaml:"pubsub"`
}

// LoadEnv loads the environment variables from a .env file
func LoadEnv() error {
	err := godotenv.Load("./../.env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	LoadEnvValues()

	if configFile := GetEnv("CONFIG_FILE", ""); configFile != "" {
		if err := ApplyConfigFile(configFile); err != nil {
			log.Printf("Error applying config file %s: %v", configFile, err)
		}
	}

	return nil
}

func LoadEnvValues() {
	SERVICE_NAME = GetEnv("SERVICE_NAME", "circulationservice")
	SERVER_PORT = GetEnv("SERVER_PORT", "8080")
	LOG_LEVEL = GetEnv("LOG_LEVEL", "INFO")
	OTEL_URL = GetEnv("OTEL_URL", "")
	WORKER_POOL = GetEnv("WORKER_POOL", "5")

	DB_URI = GetEnv("DB_URI", "mongodb://localhost:27017")
	DB_NAME = GetEnv("DB_NAME", "library")
	DB_MAXPOOLSIZE, _ = strconv.ParseUint(GetEnv("DB_MAXPOOLSIZE", "100"), 10, 64)
	DB_MINPOOLSIZE, _ = strconv.ParseUint(GetEnv("DB_MINPOOLSIZE", "10"), 10, 64)
	DB_MAXIDLETIME_INMINUTES, _ = strconv.Atoi(GetEnv("DB_MAXIDLETIME_INMINUTES", "5"))

	LOAN_PERIOD_DAYS, _ = strconv.Atoi(GetEnv("LOAN_PERIOD_DAYS", "14"))
	FINE_PER_DAY, _ = strconv.ParseInt(GetEnv("FINE_PER_DAY", "1"), 10, 64)
	RESERVATION_SWEEP_INTERVAL_SECONDS, _ = strconv.Atoi(GetEnv("RESERVATION_SWEEP_INTERVAL_SECONDS", "60"))
	NOTIFICATION_TTL_IN_HOURS, _ = strconv.Atoi(GetEnv("NOTIFICATION_TTL_IN_HOURS", "720"))
	SESSION_TTL_MINUTES, _ = strconv.Atoi(GetEnv("SESSION_TTL_MINUTES", "60"))
	TIMEOUT_IN_SECONDS, _ = strconv.Atoi(GetEnv("TIMEOUT_IN_SECONDS", "20"))

	REDIS_ADDR = GetEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = GetEnv("REDIS_PASSWORD", "")
	REDIS_DB, _ = strconv.Atoi(GetEnv("REDIS_DB", "0"))
	REDIS_ENABLE_TLS, _ = strconv.ParseBool(GetEnv("REDIS_ENABLE_TLS", "false"))
	REDIS_CONNECT_TIMEOUT_SECONDS, _ = strconv.Atoi(GetEnv("REDIS_CONNECT_TIMEOUT_SECONDS", "5"))
	REDIS_CERT_CONTENT = GetEnv("REDIS_CERT_CONTENT", "")

	KAFKA_SERVER = GetEnv("KAFKA_SERVER", "")
	KAFKA_SECURITY_PROTOCOL = GetEnv("KAFKA_SECURITY_PROTOCOL", "")
	KAFKA_SASL_MECHANISM = GetEnv("KAFKA_SASL_MECHANISM", "")
	KAFKA_SASL_USERNAME = GetEnv("KAFKA_SASL_USERNAME", "")
	KAFKA_SASL_PASSWORD = GetEnv("KAFKA_SASL_PASSWORD", "")
	KAFKA_SESSION_TIMEOUT_MS, _ = strconv.Atoi(GetEnv("KAFKA_SESSION_TIMEOUT_MS", "45000"))
	KAFKA_CLIENT_ID = GetEnv("KAFKA_CLIENT_ID", "circulationservice")
	KAFKA_TOPIC = GetEnv("KAFKA_TOPIC", "circulation-audit")

	PROJECT_ID = GetEnv("PROJECT_ID", "")
	PUBSUB_TOPIC = GetEnv("PUBSUB_TOPIC", "library-member-notifications")
}

// ApplyConfigFile overlays values from a YAML config file on top of the
// environment-derived configuration.
func ApplyConfigFile(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	if cfg.Server.ServiceName != "" {
		SERVICE_NAME = cfg.Server.ServiceName
	}
	if cfg.Server.Port != "" {
		SERVER_PORT = cfg.Server.Port
	}
	if cfg.Logging.Level != "" {
		LOG_LEVEL = cfg.Logging.Level
	}
	if cfg.Circulation.LoanPeriodDays > 0 {
		LOAN_PERIOD_DAYS = cfg.Circulation.LoanPeriodDays
	}
	if cfg.Circulation.FinePerDay > 0 {
		FINE_PER_DAY = cfg.Circulation.FinePerDay
	}
	if cfg.Circulation.SweepIntervalSeconds > 0 {
		RESERVATION_SWEEP_INTERVAL_SECONDS = cfg.Circulation.SweepIntervalSeconds
	}
	if cfg.PubSub.ProjectID != "" {
		PROJECT_ID = cfg.PubSub.ProjectID
	}
	if cfg.PubSub.Topic != "" {
		PUBSUB_TOPIC = cfg.PubSub.Topic
	}

	return nil
}

// GetRedisConfig returns a RedisConfig struct populated from environment variables
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           REDIS_ADDR,
		Password:       REDIS_PASSWORD,
		DB:             REDIS_DB,
		EnableTLS:      REDIS_ENABLE_TLS,
		ConnectTimeout: time.Duration(REDIS_CONNECT_TIMEOUT_SECONDS) * time.Second,
		CertContent:    REDIS_CERT_CONTENT,
	}
}

// GetEnv fetches the value of an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
