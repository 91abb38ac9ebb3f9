// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		// フレーズ検証ポリシー (リビジョンによって値が異なるため設定で切替可能にする)
		MinWords      int `mapstructure:"min_words"`
		MaxWords      int `mapstructure:"max_words"`
		MaxWordLength int `mapstructure:"max_word_length"`
		MaxHintLength int `mapstructure:"max_hint_length"`

		// 選択エンジンのポリシー
		SelectionLimit         int `mapstructure:"selection_limit"`
		BatchLimit             int `mapstructure:"batch_limit"`
		BeginnerBoostThreshold int `mapstructure:"beginner_boost_threshold"`
		BeginnerBoostCeiling   int `mapstructure:"beginner_boost_ceiling"`
	} `mapstructure:"app"`
	Redis struct {
		URL     string `mapstructure:"url"`     // 空なら通知はログ出力のみ
		Channel string `mapstructure:"channel"` // pub/sub チャネル名
	} `mapstructure:"redis"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数名を指定して読み込むことも可能 (例: APP_AUTH_ENABLED)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.MinWords <= 0 {
		Cfg.App.MinWords = DefaultMinWords
	}
	if Cfg.App.MaxWords <= 0 {
		Cfg.App.MaxWords = DefaultMaxWords
	}
	if Cfg.App.MaxWordLength <= 0 {
		Cfg.App.MaxWordLength = DefaultMaxWordLength
	}
	if Cfg.App.MaxHintLength <= 0 {
		Cfg.App.MaxHintLength = DefaultMaxHintLength
	}
	if Cfg.App.SelectionLimit <= 0 {
		Cfg.App.SelectionLimit = DefaultSelectionLimit
	}
	if Cfg.App.BatchLimit <= 0 {
		Cfg.App.BatchLimit = DefaultBatchLimit
	}
	if Cfg.App.BeginnerBoostThreshold <= 0 {
		Cfg.App.BeginnerBoostThreshold = DefaultBeginnerBoostThreshold
	}
	if Cfg.App.BeginnerBoostCeiling <= 0 {
		Cfg.App.BeginnerBoostCeiling = DefaultBeginnerBoostCeiling
	}
	if Cfg.Redis.Channel == "" {
		Cfg.Redis.Channel = DefaultNotifyChannel
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	// Auth.Enabled のデフォルト値を設定 (未設定なら true = 有効 にする)
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Word count policy: %d-%d words, max %d runes/word, hint cap %d",
		Cfg.App.MinWords, Cfg.App.MaxWords, Cfg.App.MaxWordLength, Cfg.App.MaxHintLength)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
