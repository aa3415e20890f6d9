package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Whisper WhisperConfig `yaml:"whisper"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	AllowedOrigin     string        `yaml:"allowed_origin"`
	KeepaliveInterval time.Duration `yaml:"keepalive_interval"`
	ViewerWaitWindow  time.Duration `yaml:"viewer_wait_window"`
}

// UnmarshalYAML parses the duration fields from "2s" style strings,
// which yaml.v3 does not handle for time.Duration on its own.
func (s *ServerConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Port              int    `yaml:"port"`
		AllowedOrigin     string `yaml:"allowed_origin"`
		KeepaliveInterval string `yaml:"keepalive_interval"`
		ViewerWaitWindow  string `yaml:"viewer_wait_window"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	s.Port = raw.Port
	s.AllowedOrigin = raw.AllowedOrigin

	if raw.KeepaliveInterval != "" {
		d, err := time.ParseDuration(raw.KeepaliveInterval)
		if err != nil {
			return fmt.Errorf("keepalive_interval: %w", err)
		}
		s.KeepaliveInterval = d
	}
	if raw.ViewerWaitWindow != "" {
		d, err := time.ParseDuration(raw.ViewerWaitWindow)
		if err != nil {
			return fmt.Errorf("viewer_wait_window: %w", err)
		}
		s.ViewerWaitWindow = d
	}

	return nil
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type PathsConfig struct {
	Storage string `yaml:"storage"`
	Input   string `yaml:"input"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Paths.Storage == "" {
		return fmt.Errorf("paths.storage is required")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = "http://localhost:5173"
	}
	if c.Server.KeepaliveInterval == 0 {
		c.Server.KeepaliveInterval = 2 * time.Second
	}
	if c.Server.ViewerWaitWindow == 0 {
		c.Server.ViewerWaitWindow = 3 * time.Second
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
