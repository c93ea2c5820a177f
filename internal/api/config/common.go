package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Seed   SeedConfig   `mapstructure:"seed"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URL      string `mapstructure:"url" validate:"required"`
	Database string `mapstructure:"database" validate:"required"`
	Timeout  int    `mapstructure:"timeout" validate:"gte=0"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LLMConfig 文本生成服务配置，provider 为 openai（任意 OpenAI 兼容端点）或 gemini
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"oneof=openai gemini"`
	URL         string  `mapstructure:"url"`
	TextModel   string  `mapstructure:"text_model" validate:"required"`
	ApiKey      string  `mapstructure:"api_key"`
	CallDelayMs int     `mapstructure:"call_delay_ms" validate:"gte=0"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// SeedConfig 造数参数
type SeedConfig struct {
	NumUsers           int      `mapstructure:"num_users" validate:"gte=0"`
	NumPosts           int      `mapstructure:"num_posts" validate:"gte=0"`
	MaxFriendsPerUser  int      `mapstructure:"max_friends_per_user" validate:"gte=0"`
	MaxCommentsPerPost int      `mapstructure:"max_comments_per_post" validate:"gte=0"`
	MaxLikesPerPost    int      `mapstructure:"max_likes_per_post" validate:"gte=0"`
	HistoryDays        int      `mapstructure:"history_days" validate:"gte=0"`
	Seed               int64    `mapstructure:"seed"`
	Topics             []string `mapstructure:"topics"`
	Schedule           string   `mapstructure:"schedule"`
	// Clear 每次运行前清空六个集合，定时任务需要开启，否则第二次运行会因唯一索引失败
	Clear bool `mapstructure:"clear"`
}

// LoggerConfig 日志配置，file 非空时同时写入文件
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}
