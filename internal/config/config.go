package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lbrrrrrr/enjoyyoga/internal/database"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Email     EmailConfig     `mapstructure:"email"`
	Studio    StudioConfig    `mapstructure:"studio"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Retention RetentionConfig `mapstructure:"retention"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	MasterToken string        `mapstructure:"master_token"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	ReplyTo      string `mapstructure:"reply_to"`
}

// StudioConfig carries studio-wide display settings.
type StudioConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
	BaseURL  string `mapstructure:"base_url"`
}

type SchedulerConfig struct {
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
	DispatchInterval time.Duration `mapstructure:"dispatch_interval"`
	ReminderCron     string        `mapstructure:"reminder_cron"`
	LookAheadDays    int           `mapstructure:"look_ahead_days"`
}

// RetentionConfig values accept plain Go durations plus a "d" suffix for
// days ("90d").
type RetentionConfig struct {
	Registrations string        `mapstructure:"registrations"`
	Inquiries     string        `mapstructure:"inquiries"`
	CheckPeriod   time.Duration `mapstructure:"check_period"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// RetentionDurations is RetentionConfig with the day-suffixed strings
// resolved to time.Durations.
type RetentionDurations struct {
	Registrations time.Duration
	Inquiries     time.Duration
}

func Load() (*Config, error) {
	return LoadWithPath("")
}

// LoadWithPath reads configuration from the given YAML file (falling back
// to ./config.yaml), layered under environment variables and defaults.
func LoadWithPath(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "enjoyyoga")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.token_ttl", "12h")
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.from", "EnjoyYoga <noreply@enjoyyoga.example>")
	viper.SetDefault("studio.name", "EnjoyYoga")
	viper.SetDefault("studio.timezone", "America/New_York")
	viper.SetDefault("scheduler.refresh_interval", "5m")
	viper.SetDefault("scheduler.dispatch_interval", "30s")
	viper.SetDefault("scheduler.reminder_cron", "0 16 * * *")
	viper.SetDefault("scheduler.look_ahead_days", 30)
	viper.SetDefault("retention.registrations", "365d")
	viper.SetDefault("retention.inquiries", "180d")
	viper.SetDefault("retention.check_period", "1h")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file_path", "enjoyyoga.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

// ParseRetentionDurations resolves the retention strings, which accept a
// trailing "d" for days in addition to standard duration syntax.
func (c *Config) ParseRetentionDurations() (*RetentionDurations, error) {
	regs, err := parseDayDuration(c.Retention.Registrations)
	if err != nil {
		return nil, fmt.Errorf("invalid retention.registrations: %w", err)
	}
	inqs, err := parseDayDuration(c.Retention.Inquiries)
	if err != nil {
		return nil, fmt.Errorf("invalid retention.inquiries: %w", err)
	}
	return &RetentionDurations{Registrations: regs, Inquiries: inqs}, nil
}

func parseDayDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

// ToDBConfig converts DatabaseConfig to database.Config
func (c DatabaseConfig) ToDBConfig() database.Config {
	return database.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		DBName:   c.DBName,
		SSLMode:  c.SSLMode,
	}
}
