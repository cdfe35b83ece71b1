// Package config loads process configuration by layering defaults, an
// optional YAML file and MINIFOOT_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Port is the HTTP listen port.
	Port string `koanf:"port"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ConsoleLog switches to the human-readable console writer.
	ConsoleLog bool `koanf:"console_log"`

	// FirebaseProjectID and FirebaseCredentialsJSON configure the
	// Firestore client and the auth middleware.
	FirebaseProjectID       string `koanf:"firebase_project_id"`
	FirebaseCredentialsJSON string `koanf:"firebase_credentials_json"`

	// CORSHosts is a comma-separated allow list of origins.
	CORSHosts string `koanf:"cors_hosts"`

	// CloudinaryCloudName and CloudinaryUploadPreset configure unsigned
	// player photo uploads.
	CloudinaryCloudName    string `koanf:"cloudinary_cloud_name"`
	CloudinaryUploadPreset string `koanf:"cloudinary_upload_preset"`

	// ResendKey and ReportFrom configure emailed match reports.
	ResendKey  string `koanf:"resend_key"`
	ReportFrom string `koanf:"report_from"`

	// MinRosterSize is the smallest team allowed when committing a match.
	MinRosterSize int `koanf:"min_roster_size"`

	// SameTeamAssist rejects assists credited across teams. Off by
	// default: stored matches predate the rule.
	SameTeamAssist bool `koanf:"same_team_assist"`
}

func defaults() *Config {
	return &Config{
		Port:          "8080",
		LogLevel:      "info",
		ReportFrom:    "reports@minifoot.app",
		MinRosterSize: 1,
	}
}

// Load builds a Config. Order of precedence (low -> high):
//  1. defaults
//  2. YAML file named by MINIFOOT_CONFIG, if set
//  3. env vars (prefix MINIFOOT_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("MINIFOOT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// MINIFOOT_FIREBASE_PROJECT_ID -> firebase_project_id, keeping
	// underscores to match the koanf tags above.
	envProvider := env.Provider("MINIFOOT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MINIFOOT_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		return nil, errors.New("port must not be empty")
	}
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("firebase_project_id must not be empty")
	}
	return &cfg, nil
}
