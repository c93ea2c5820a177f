package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	require.NoError(t, LoadConfig())
	require.NotNil(t, Cfg)

	assert.Equal(t, "social_feed", Cfg.Mongo.Database)
	assert.Equal(t, 1000, Cfg.Seed.NumUsers)
	assert.Equal(t, 2000, Cfg.Seed.NumPosts)
	assert.Equal(t, 50, Cfg.Seed.MaxFriendsPerUser)
	assert.Equal(t, 5, Cfg.Seed.MaxCommentsPerPost)
	assert.Equal(t, 100, Cfg.Seed.MaxLikesPerPost)
	assert.Equal(t, 1100, Cfg.LLM.CallDelayMs)
	assert.InDelta(t, 0.7, Cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, DefaultTopics, Cfg.Seed.Topics)
	assert.False(t, Cfg.Seed.Clear)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SEEDER_LLM_API_KEY", "secret")
	t.Setenv("SEEDER_SEED_NUM_USERS", "12")
	t.Setenv("SEEDER_LLM_PROVIDER", "openai")
	t.Setenv("SEEDER_SEED_CLEAR", "true")

	require.NoError(t, LoadConfig())
	assert.True(t, Cfg.Seed.Clear)
	assert.Equal(t, "secret", Cfg.LLM.ApiKey)
	assert.Equal(t, 12, Cfg.Seed.NumUsers)
	assert.Equal(t, "openai", Cfg.LLM.Provider)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mongo: MongoConfig{URL: "mongodb://localhost:27017", Database: "social_feed"},
			LLM:   LLMConfig{Provider: "gemini", TextModel: "m", Temperature: 0.7},
			Seed:  SeedConfig{NumUsers: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "claude" }, wantErr: "Provider"},
		{name: "negative users", mutate: func(c *Config) { c.Seed.NumUsers = -1 }, wantErr: "NumUsers"},
		{name: "missing mongo url", mutate: func(c *Config) { c.Mongo.URL = "" }, wantErr: "URL"},
		{name: "redis enabled without addr", mutate: func(c *Config) { c.Redis.Enabled = true }, wantErr: "Addr"},
		{name: "temperature out of range", mutate: func(c *Config) { c.LLM.Temperature = 3 }, wantErr: "Temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
