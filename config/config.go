// Package config 提供 YAML 配置加载与引擎装配。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 是推荐服务的顶层配置。
type Config struct {
	// Engine 引擎名称（快照归属校验用）
	Engine string `yaml:"engine"`

	// SnapshotPath 模型快照文件路径，空则模型只存在于内存
	SnapshotPath string `yaml:"snapshot_path"`

	// TopN 默认返回条数
	TopN int `yaml:"top_n"`

	// Blend 三路信号融合权重
	Blend BlendConfig `yaml:"blend"`

	// Neighbors 协同过滤考虑的相似用户数
	Neighbors int `yaml:"neighbors"`

	// Redis 外部存储；不配置时使用内存存储（开发/测试）
	Redis *RedisConfig `yaml:"redis"`

	// Feast 在线特征增强；不配置时只用目录自带属性
	Feast *FeastConfig `yaml:"feast"`

	// Rules 服务端业务规则（CEL 表达式，返回 true 保留候选）
	Rules []string `yaml:"rules"`

	// RetrainInterval 周期重训间隔，0 表示只按目录变更事件触发
	RetrainInterval Duration `yaml:"retrain_interval"`
}

// Duration 是支持 "30s" / "6h" 写法的 time.Duration。
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std 返回标准库表示。
func (d Duration) Std() time.Duration { return time.Duration(d) }

// BlendConfig 融合权重配置。全零时引擎使用内置默认值 0.4/0.35/0.25。
type BlendConfig struct {
	Collaborative float64 `yaml:"collaborative"`
	Content       float64 `yaml:"content"`
	Popularity    float64 `yaml:"popularity"`
}

// RedisConfig Redis 连接配置。
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// FeastConfig Feast 在线特征配置。
type FeastConfig struct {
	Host      string   `yaml:"host"`
	Port      int      `yaml:"port"`
	Project   string   `yaml:"project"`
	EntityKey string   `yaml:"entity_key"`
	Features  []string `yaml:"features"`
}

// Default 返回缺省配置。
func Default() *Config {
	return &Config{
		Engine: "hybrid",
		TopN:   10,
	}
}

// Load 从 YAML 文件加载配置，未出现的字段保持缺省值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置的合法性。
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("config: top_n must be >= 0, got %d", c.TopN)
	}
	if c.Neighbors < 0 {
		return fmt.Errorf("config: neighbors must be >= 0, got %d", c.Neighbors)
	}
	if c.Blend.Collaborative < 0 || c.Blend.Content < 0 || c.Blend.Popularity < 0 {
		return fmt.Errorf("config: blend weights must be >= 0")
	}
	if c.Redis != nil && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is configured")
	}
	if c.Feast != nil && c.Feast.Host == "" {
		return fmt.Errorf("config: feast.host is required when feast is configured")
	}
	return nil
}
