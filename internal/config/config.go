package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"doc-intel-go/internal/constants"
	"doc-intel-go/internal/logger"
)

// EmbeddingConfig 向量服务配置（OpenAI 兼容接口）
type EmbeddingConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	Dimensions     int    `yaml:"dimensions"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RedisConfig 向量缓存用的 Redis 配置，Address 为空时不启用缓存
type RedisConfig struct {
	Address       string `yaml:"address"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	CacheTTLHours int    `yaml:"cache_ttl_hours"`
}

// ServerConfig HTTP 服务配置（仅 serve 模式使用）
type ServerConfig struct {
	Address string `yaml:"address"`
}

// AnalysisConfig 分析流程配置
type AnalysisConfig struct {
	InputDir          string `yaml:"input_dir"`
	OutputDir         string `yaml:"output_dir"`
	OutputFilename    string `yaml:"output_filename"`
	TimeBudgetSeconds int    `yaml:"time_budget_seconds"`
	KnowledgeFile     string `yaml:"knowledge_file"` // 可选：覆盖内置画像/任务知识库
}

// Config 应用程序配置
type Config struct {
	Logger    logger.Config   `yaml:"logger"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Redis     RedisConfig     `yaml:"redis"`
	Server    ServerConfig    `yaml:"server"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
}

// Default 返回填好默认值的配置
func Default() *Config {
	return &Config{
		Logger: logger.Config{
			Level:  "info",
			Format: "pretty",
		},
		Embedding: EmbeddingConfig{
			BaseURL:        "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings",
			Model:          "text-embedding-v3",
			Dimensions:     1024,
			TimeoutSeconds: 30,
		},
		Redis: RedisConfig{
			CacheTTLHours: 24,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Analysis: AnalysisConfig{
			InputDir:          "input",
			OutputDir:         "output",
			OutputFilename:    constants.DefaultOutputFilename,
			TimeBudgetSeconds: int(constants.DefaultTimeBudget / time.Second),
		},
	}
}

// LoadConfig 加载 YAML 配置文件，path 为空时尝试 ./config.yaml，
// 找不到文件则直接使用默认配置
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = "config.yaml"
		if _, err := os.Stat(path); err != nil {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides 环境变量优先于配置文件，便于不落盘传递密钥
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("EMBEDDING_API_KEY"); key != "" {
		cfg.Embedding.APIKey = key
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		cfg.Redis.Address = addr
	}
}

// TimeBudget 返回软性时间预算
func (c *Config) TimeBudget() time.Duration {
	if c.Analysis.TimeBudgetSeconds <= 0 {
		return constants.DefaultTimeBudget
	}
	return time.Duration(c.Analysis.TimeBudgetSeconds) * time.Second
}
