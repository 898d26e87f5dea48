package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// GridDefaults 创建网格时预填的参数草稿
type GridDefaults struct {
	Symbol      string  // 交易对，例如 aipg_usdt
	Positions   int     // 档位数
	TotalAmount float64 // 总投入（USDT）
	MinDistance float64 // 最小网格距离（%）
	MaxDistance float64 // 最大网格距离（%）
}

// Config 应用配置
type Config struct {
	BaseURL      string        // 后端地址
	PollInterval time.Duration // 状态/价格轮询周期
	LogLevel     string        // 日志级别
	LogFile      string        // 日志文件路径（TUI 模式下日志只进文件）
	Grid         GridDefaults  // 网格参数草稿的预填值
}

// ConfigFile 配置文件结构（用于 YAML/JSON 解析）
type ConfigFile struct {
	BaseURL      string `yaml:"base_url" json:"base_url"`
	PollInterval int    `yaml:"poll_interval" json:"poll_interval"` // 秒
	LogLevel     string `yaml:"log_level" json:"log_level"`
	LogFile      string `yaml:"log_file" json:"log_file"`
	Grid         struct {
		Symbol      string  `yaml:"symbol" json:"symbol"`
		Positions   int     `yaml:"positions" json:"positions"`
		TotalAmount float64 `yaml:"total_amount" json:"total_amount"`
		MinDistance float64 `yaml:"min_distance" json:"min_distance"`
		MaxDistance float64 `yaml:"max_distance" json:"max_distance"`
	} `yaml:"grid" json:"grid"`
}

// Load 加载配置
//
// 优先级：配置文件 > 环境变量 > 默认值。filePath 为空时只走环境变量和默认值。
func Load(filePath string) (*Config, error) {
	var configFile *ConfigFile
	if filePath != "" {
		var err error
		configFile, err = loadConfigFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败 %s: %w", filePath, err)
		}
	}

	config := &Config{
		BaseURL: func() string {
			if configFile != nil && configFile.BaseURL != "" {
				return configFile.BaseURL
			}
			return getEnv("GRIDDASH_BASE_URL", "http://127.0.0.1:8000")
		}(),
		PollInterval: func() time.Duration {
			if configFile != nil && configFile.PollInterval > 0 {
				return time.Duration(configFile.PollInterval) * time.Second
			}
			return time.Duration(parseIntEnv("GRIDDASH_POLL_INTERVAL", 30)) * time.Second
		}(),
		LogLevel: func() string {
			if configFile != nil && configFile.LogLevel != "" {
				return configFile.LogLevel
			}
			return getEnv("LOG_LEVEL", "info")
		}(),
		LogFile: func() string {
			if configFile != nil && configFile.LogFile != "" {
				return configFile.LogFile
			}
			return getEnv("LOG_FILE", "logs/griddash.log")
		}(),
		Grid: GridDefaults{
			Symbol: func() string {
				if configFile != nil && configFile.Grid.Symbol != "" {
					return configFile.Grid.Symbol
				}
				return getEnv("GRID_SYMBOL", "aipg_usdt")
			}(),
			Positions: func() int {
				if configFile != nil && configFile.Grid.Positions > 0 {
					return configFile.Grid.Positions
				}
				return parseIntEnv("GRID_POSITIONS", 20)
			}(),
			TotalAmount: func() float64 {
				if configFile != nil && configFile.Grid.TotalAmount > 0 {
					return configFile.Grid.TotalAmount
				}
				return parseFloatEnv("GRID_TOTAL_AMOUNT", 200)
			}(),
			MinDistance: func() float64 {
				if configFile != nil && configFile.Grid.MinDistance > 0 {
					return configFile.Grid.MinDistance
				}
				return parseFloatEnv("GRID_MIN_DISTANCE", 0.5)
			}(),
			MaxDistance: func() float64 {
				if configFile != nil && configFile.Grid.MaxDistance > 0 {
					return configFile.Grid.MaxDistance
				}
				return parseFloatEnv("GRID_MAX_DISTANCE", 10)
			}(),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}
	return config, nil
}

// loadConfigFile 加载配置文件（支持 YAML 和 JSON）
func loadConfigFile(filePath string) (*ConfigFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var configFile ConfigFile
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &configFile); err != nil {
			return nil, fmt.Errorf("解析 YAML 配置文件失败: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &configFile); err != nil {
			return nil, fmt.Errorf("解析 JSON 配置文件失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的配置文件格式: %s (支持 .yaml, .yml, .json)", ext)
	}

	return &configFile, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("GRIDDASH_BASE_URL 未配置")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("后端地址必须以 http:// 或 https:// 开头: %s", c.BaseURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("轮询周期必须大于 0")
	}
	if c.Grid.Symbol == "" {
		return fmt.Errorf("GRID_SYMBOL 不能为空")
	}
	if c.Grid.Positions < 1 {
		return fmt.Errorf("GRID_POSITIONS 必须大于 0")
	}
	return nil
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv 解析整数环境变量
func parseIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseFloatEnv 解析浮点数环境变量
func parseFloatEnv(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
