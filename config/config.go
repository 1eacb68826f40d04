// Package config はアプリケーション設定を管理します。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// データディレクトリのパス（SQLiteファイルの置き場所）
	DataDir string

	// Webダッシュボードのポート
	Port string

	// レポートのデフォルトテンプレート名（空の場合はレンダラ側のデフォルト）
	DefaultTemplate string `yaml:"default_template"`

	// AI要約の設定
	AI AIConfig `yaml:"ai"`
}

// AIConfig はAI要約プロバイダの設定を保持します。
// コアはこの内容を不透明な入力としてsummarizeパッケージに渡すだけです。
type AIConfig struct {
	Provider       string `yaml:"provider"`        // openai / anthropic / gemini / custom / local
	APIKey         string `yaml:"api_key"`         //
	Model          string `yaml:"model"`           // 空の場合はプロバイダごとのデフォルト
	Endpoint       string `yaml:"endpoint"`        // customプロバイダ用
	LocalToolPath  string `yaml:"local_tool_path"` // 空の場合は"cline"
	Instructions   string `yaml:"instructions"`    // 要約スタイルの指示
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 0の場合はデフォルトタイムアウト
}

// Load は環境変数とオプションのYAML設定ファイルから設定を読み込みます。
//
// 環境変数:
//
//	FASTREP_DATA_DIR    データディレクトリ（デフォルト: ~/.fastrep）
//	FASTREP_PORT        Webダッシュボードのポート（デフォルト: 5000）
//	FASTREP_CONFIG      YAML設定ファイルのパス（デフォルト: ~/.config/fastrep/config.yaml）
//	FASTREP_AI_PROVIDER AIプロバイダ名（設定ファイルより優先）
//	FASTREP_AI_API_KEY  AIプロバイダのAPIキー（設定ファイルより優先）
func Load() (*Config, error) {
	cfg := &Config{}

	// データディレクトリの設定
	dataDir := os.Getenv("FASTREP_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fastrep")
	}
	cfg.DataDir = dataDir

	// ポートの設定
	port := os.Getenv("FASTREP_PORT")
	if port == "" {
		port = "5000"
	}
	cfg.Port = port

	// YAML設定ファイルの読み込み（存在しない場合はスキップ）
	if err := loadFile(cfg, configFilePath()); err != nil {
		return nil, err
	}

	// 環境変数による上書き
	if provider := os.Getenv("FASTREP_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if apiKey := os.Getenv("FASTREP_AI_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}

	return cfg, nil
}

// configFilePath は設定ファイルのパスを決定します。
func configFilePath() string {
	if path := os.Getenv("FASTREP_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fastrep", "config.yaml")
}

// loadFile はYAML設定ファイルを読み込んで設定に反映します。
// ファイルが存在しない場合はエラーにしません。
func loadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
