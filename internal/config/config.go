package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// System-of-record API
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	BackendAddr   string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	ReminderTime  string

	// Web app
	ServerAddr    string
	APIURL        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GinMode  string
	Timezone string
}

// Load reads configuration from the environment, optionally layered over a
// YAML file named by TASKZEN_CONFIG.
func Load() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("TASKZEN_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Ignoring config file %s: %v", path, err)
		}
	}

	return &Config{
		DBDriver:      v.GetString("DB_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		BackendAddr:   v.GetString("BACKEND_ADDR"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		ReminderTime:  v.GetString("REMINDER_TIME"),
		ServerAddr:    v.GetString("SERVER_ADDR"),
		APIURL:        strings.TrimRight(v.GetString("API_URL"), "/"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		GinMode:       v.GetString("GIN_MODE"),
		Timezone:      v.GetString("TZ"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "taskuser")
	v.SetDefault("DB_PASSWORD", "taskpassword")
	v.SetDefault("DB_NAME", "taskzen")
	v.SetDefault("BACKEND_ADDR", ":8000")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("REMINDER_TIME", "08:00")
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("API_URL", "http://localhost:8000")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_SECRET", "default-secret-key-change-me")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("TZ", "Local")
	v.SetDefault("TASKZEN_CONFIG", "")
}

// Location resolves the configured timezone, falling back to the process
// local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}
