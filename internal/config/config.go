package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTConf struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type StorageConf struct {
	Driver   string `mapstructure:"driver"` // local | s3
	LocalDir string `mapstructure:"local_dir"`
	BaseURL  string `mapstructure:"base_url"`
}

type AWSConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type LegacyConf struct {
	CSVPath string `mapstructure:"csv_path"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Mongo   MongoConf   `mapstructure:"mongodb"`
	JWT     JWTConf     `mapstructure:"jwt"`
	Storage StorageConf `mapstructure:"storage"`
	AWS     AWSConf     `mapstructure:"aws"`
	Legacy  LegacyConf  `mapstructure:"legacy"`

	// derived
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
}

// Load reads the YAML config at path and applies environment overrides.
// Values are read once at process start.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if s := v.GetString(env); s != "" {
			apply(s)
		}
	}
	override("APP_ENV", func(s string) { cfg.App.Env = s })
	override("PORT", func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.App.Port = n
		}
	})
	override("APP_PORT", func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.App.Port = n
		}
	})
	override("MONGO_URI", func(s string) { cfg.Mongo.URI = s })
	override("MONGO_DB", func(s string) { cfg.Mongo.Database = s })
	override("JWT_SECRET", func(s string) { cfg.JWT.Secret = s })
	override("STORAGE_DRIVER", func(s string) { cfg.Storage.Driver = s })
	override("UPLOAD_DIR", func(s string) { cfg.Storage.LocalDir = s })
	override("AWS_REGION", func(s string) { cfg.AWS.Region = s })
	override("AWS_BUCKET", func(s string) { cfg.AWS.Bucket = s })
	override("LEGACY_CSV_PATH", func(s string) { cfg.Legacy.CSVPath = s })

	if cfg.App.Port == 0 {
		cfg.App.Port = 10000
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "uploads"
	}
	if cfg.Legacy.CSVPath == "" {
		cfg.Legacy.CSVPath = "registrations.csv"
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLHours) * time.Hour

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.Mongo.Database == "" {
		return nil, errors.New("MONGO_DB is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required (set in .env or config.yaml)")
	}
	if cfg.Storage.Driver == "s3" && (cfg.AWS.Region == "" || cfg.AWS.Bucket == "") {
		return nil, errors.New("s3 storage requires AWS_REGION and AWS_BUCKET")
	}

	return &cfg, nil
}
