package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Debate DebateConfig
	AI     AIConfig
	App    AppConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	debate, err := loadDebateConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Debate: debate,
		AI:     loadAIConfig(),
		App:    loadAppConfig(),
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// DebateConfig 控制会话与回复生成的行为。
type DebateConfig struct {
	// StrictSessions makes unknown session ids fail with not-found instead of
	// being accepted silently.
	StrictSessions bool
	HistoryLimit   int
	PromptsDir     string
}

const defaultHistoryLimit = 10

func loadDebateConfig() (DebateConfig, error) {
	strict, err := parseBoolEnv("DEBATE_STRICT_SESSIONS", false)
	if err != nil {
		return DebateConfig{}, err
	}

	historyLimit := defaultHistoryLimit
	if override, err := parseOptionalIntEnv("DEBATE_HISTORY_LIMIT"); err != nil {
		return DebateConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return DebateConfig{}, fmt.Errorf("invalid DEBATE_HISTORY_LIMIT value %d: must be at least 1", *override)
		}
		historyLimit = *override
	}

	return DebateConfig{
		StrictSessions: strict,
		HistoryLimit:   historyLimit,
		PromptsDir:     strings.TrimSpace(os.Getenv("DEBATE_PROMPTS_DIR")),
	}, nil
}

// AIConfig 保存未来接入生成服务所需的凭证，目前仅做记录。
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Configured 表示是否提供了生成服务的密钥。
func (c AIConfig) Configured() bool {
	return c.APIKey != ""
}

func loadAIConfig() AIConfig {
	return AIConfig{
		APIKey:  strings.TrimSpace(os.Getenv("NVIDIA_API_KEY")),
		Model:   getEnvOrDefault("NIM_MODEL", "meta/llama3-70b-instruct"),
		BaseURL: getEnvOrDefault("NIM_BASE_URL", "https://integrate.api.nvidia.com/v1"),
	}
}

// AppConfig 描述健康检查中暴露的版本信息。
type AppConfig struct {
	Version     string
	Environment string
}

func loadAppConfig() AppConfig {
	return AppConfig{
		Version:     getEnvOrDefault("APP_VERSION", "0.1.0"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
