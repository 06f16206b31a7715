// Package config loads curricula settings from an optional config file,
// .env and CURRICULA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/pipeline"
)

// EnvPrefix is the prefix of environment overrides, e.g. CURRICULA_SERVER_ADDR.
const EnvPrefix = "CURRICULA"

// maxRetryAttempts caps llm.retry.max_attempts.
const maxRetryAttempts = 4

// Config is the resolved application configuration.
type Config struct {
	Log struct {
		Mode string
	}
	Server struct {
		Addr string
	}
	DB struct {
		Path string
	}
	Redis struct {
		Addr string
		TTL  time.Duration
	}
	LLM struct {
		Provider string
		Model    string
		Timeout  time.Duration
		Retry    llm.RetryConfig
	}
	Pipeline struct {
		EnrichLessons bool
	}

	// File is the config file that was read, if any.
	File string
}

func setDefaults(v *viper.Viper) {
	retry := llm.DefaultConfig().Retry

	v.SetDefault("log.mode", "development")
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("db.path", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.retry.max_attempts", retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", retry.Multiplier)
	v.SetDefault("llm.retry.jitter", retry.Jitter)
	v.SetDefault("pipeline.enrich_lessons", false)
}

// Load reads configuration. With path empty, curricula.{yaml,toml,json} is
// searched in the working directory and the user config directories, and
// a missing file is not an error. .env in the working directory is loaded
// first; it never overrides variables already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("curricula")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{File: v.ConfigFileUsed()}
	cfg.Log.Mode = v.GetString("log.mode")
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.DB.Path = v.GetString("db.path")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.TTL = v.GetDuration("redis.ttl")
	cfg.LLM.Provider = v.GetString("llm.provider")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.Timeout = v.GetDuration("llm.timeout")
	cfg.LLM.Retry = llm.RetryConfig{
		MaxAttempts: v.GetInt("llm.retry.max_attempts"),
		InitialWait: v.GetDuration("llm.retry.initial_wait"),
		MaxWait:     v.GetDuration("llm.retry.max_wait"),
		Multiplier:  v.GetFloat64("llm.retry.multiplier"),
		Jitter:      v.GetFloat64("llm.retry.jitter"),
	}
	cfg.Pipeline.EnrichLessons = v.GetBool("pipeline.enrich_lessons")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	if c.LLM.Retry.MaxAttempts < 1 || c.LLM.Retry.MaxAttempts > maxRetryAttempts {
		return fmt.Errorf("llm.retry.max_attempts must be between 1 and %d, got %d", maxRetryAttempts, c.LLM.Retry.MaxAttempts)
	}
	if c.LLM.Retry.Multiplier < 1 {
		return fmt.Errorf("llm.retry.multiplier must be at least 1, got %g", c.LLM.Retry.Multiplier)
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be positive, got %s", c.Redis.TTL)
	}
	return nil
}

// LLMConfig combines the file settings with the API keys found in the
// environment. The provider is auto-selected when none is configured.
func (c *Config) LLMConfig() llm.Config {
	lc := llm.ConfigFromEnv()
	if c.LLM.Provider != "" {
		lc.Provider = c.LLM.Provider
	}
	lc.Timeout = c.LLM.Timeout
	lc.Retry = c.LLM.Retry
	lc.Resolve()
	if c.LLM.Model != "" {
		lc.SetModel(c.LLM.Model)
	}
	return lc
}

// PipelineConfig returns stage settings with enrichment applied.
func (c *Config) PipelineConfig() pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.LessonPlan.Enrich = c.Pipeline.EnrichLessons
	return pc
}

func searchPaths() []string {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "curricula"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "curricula"))
	}
	return paths
}
