package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// DefaultTopics 默认话题目录
var DefaultTopics = []string{
	"Machine Learning", "Web Development", "Gaming", "Travel", "Music",
	"Cooking", "Health & Wellness", "Finance", "Movies", "Art",
	"Photography", "Fitness", "Books", "Space Exploration", "DIY",
	"Education", "Fashion", "Sports", "Environment", "Science",
}

var validate = validator.New()

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 SEEDER_* 覆盖文件中的同名项
func LoadConfig() error {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix("seeder")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Seed.Topics) == 0 {
		cfg.Seed.Topics = DefaultTopics
	}

	if err := Validate(&cfg); err != nil {
		return err
	}

	Cfg = &cfg

	return nil
}

// Validate 校验配置，只返回第一个失败的字段
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return fmt.Errorf("config field [%s] failed rule [%s]", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "social_feed")
	v.SetDefault("mongo.timeout", 10)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 4)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.url", "")
	v.SetDefault("llm.text_model", "gemini-1.5-flash-latest")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.call_delay_ms", 1100)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("seed.num_users", 1000)
	v.SetDefault("seed.num_posts", 2000)
	v.SetDefault("seed.max_friends_per_user", 50)
	v.SetDefault("seed.max_comments_per_post", 5)
	v.SetDefault("seed.max_likes_per_post", 100)
	v.SetDefault("seed.history_days", 365)
	v.SetDefault("seed.seed", 0)
	v.SetDefault("seed.schedule", "")
	v.SetDefault("seed.clear", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "")
}
