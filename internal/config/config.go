package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Data struct {
		Dir       string `yaml:"dir"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"data"`
	Telegram struct {
		BotToken     string `yaml:"bot_token"`
		PhotoChannel string `yaml:"photo_channel"`
		NotifyChatID string `yaml:"notify_chat_id"`
	} `yaml:"telegram"`
	Admin struct {
		Key string `yaml:"key"`
	} `yaml:"admin"`
	Presence struct {
		Baseline int `yaml:"baseline"`
	} `yaml:"presence"`
	Storage struct {
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"storage"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to read config file: %v", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	// secrets come from the environment in deployment
	overrideEnv(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	overrideEnv(&cfg.Telegram.PhotoChannel, "TELEGRAM_PHOTO_CHANNEL")
	overrideEnv(&cfg.Telegram.NotifyChatID, "TELEGRAM_CHAT_ID")
	overrideEnv(&cfg.Admin.Key, "ADMIN_KEY")
	overrideEnv(&cfg.Data.Dir, "DATA_DIR")
	overrideEnv(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	overrideEnv(&cfg.Storage.SecretKey, "S3_SECRET_KEY")

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":5000"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "."
	}
	if cfg.Data.StaticDir == "" {
		cfg.Data.StaticDir = "static"
	}
	if cfg.Presence.Baseline == 0 {
		cfg.Presence.Baseline = 287
	}
	return cfg
}

func overrideEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
