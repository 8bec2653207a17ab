package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/Zachkp/folio/internal/mailer"
)

type Config struct {
	Port          string        `mapstructure:"port"`
	Mode          string        `mapstructure:"mode"`
	SessionSecret string        `mapstructure:"sessionSecret"`
	Admin         Admin         `mapstructure:"admin"`
	Store         Store         `mapstructure:"store"`
	SMTP          mailer.Config `mapstructure:"smtp"`
}

type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Store struct {
	Driver        string `mapstructure:"driver"`
	DataDir       string `mapstructure:"dataDir"`
	RedisAddr     string `mapstructure:"redisAddr"`
	RedisPassword string `mapstructure:"redisPassword"`
	RedisDB       int    `mapstructure:"redisDB"`
	PostgresURL   string `mapstructure:"postgresURL"`
}

// plainEnv maps keys to the unprefixed variable names deployments already use.
var plainEnv = map[string]string{
	"port":              "PORT",
	"admin.username":    "ADMIN_USERNAME",
	"admin.password":    "ADMIN_PASSWORD",
	"smtp.host":         "SMTP_HOST",
	"smtp.port":         "SMTP_PORT",
	"smtp.user":         "SMTP_USER",
	"smtp.pass":         "SMTP_PASS",
	"smtp.to":           "TO_EMAIL",
	"store.redisAddr":   "REDIS_ADDR",
	"store.postgresURL": "DATABASE_URL",
}

// Load reads cfgFile, or ./config.yaml when cfgFile is empty, then the
// environment. A missing default config file is not an error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("mode", "")
	v.SetDefault("sessionSecret", "")
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dataDir", "data")
	v.SetDefault("store.redisAddr", "localhost:6379")
	v.SetDefault("store.redisPassword", "")
	v.SetDefault("store.redisDB", 0)
	v.SetDefault("store.postgresURL", "")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range plainEnv {
		prefixed := "FOLIO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return Config{}, fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return cfg, nil
}
