package config

import (
	"fmt"
	"os"
)

const (
	defaultProjectsFile = "ci-projects.json"
	defaultEnvFile      = ".env"
	defaultHealthPort   = "8080"
)

type Config struct {
	SlackBotToken       string
	SlackAppToken       string
	SlackDefaultChannel string
	GitLabURL           string
	GitLabToken         string
	ProjectsFile        string
	EnvFile             string
	HealthPort          string
	HealthAllowedCIDRs  string
}

func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:       os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:       os.Getenv("SLACK_APP_TOKEN"),
		SlackDefaultChannel: os.Getenv("SLACK_DEFAULT_CHANNEL"),
		GitLabURL:           os.Getenv("GITLAB_URL"),
		GitLabToken:         os.Getenv("GITLAB_TOKEN"),
		ProjectsFile:        os.Getenv("CI_PROJECTS_FILE"),
		EnvFile:             os.Getenv("ENV_FILE"),
		HealthPort:          os.Getenv("HEALTH_PORT"),
		HealthAllowedCIDRs:  os.Getenv("HEALTH_ALLOWED_CIDRS"),
	}

	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if cfg.SlackAppToken == "" {
		return nil, fmt.Errorf("SLACK_APP_TOKEN is required (xapp-... token with connections:write)")
	}
	if cfg.GitLabURL == "" {
		return nil, fmt.Errorf("GITLAB_URL is required")
	}
	if cfg.GitLabToken == "" {
		return nil, fmt.Errorf("GITLAB_TOKEN is required")
	}

	if cfg.ProjectsFile == "" {
		cfg.ProjectsFile = defaultProjectsFile
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = defaultEnvFile
	}
	if cfg.HealthPort == "" {
		cfg.HealthPort = defaultHealthPort
	}

	return cfg, nil
}
