package commands

import (
	"os"

	"lauzhack-dataset/lib/configutil"
	"lauzhack-dataset/lib/serviceutil"
)

type Config struct {
	Years []int `json:"years"`
	// fmt patterns, %d is substituted with the year
	ProjectsURL string `json:"projects_url"`
	HomeURL     string `json:"home_url"`
	Database    string `json:"database"`
	DelayMs     int    `json:"delay_ms"`
	Token       string `json:"token"`
}

func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("lauzhack.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	if len(cfg.Years) == 0 {
		cfg.Years = []int{2023, 2024, 2025}
	}
	if cfg.ProjectsURL == "" {
		cfg.ProjectsURL = "https://%d.lauzhack.com/projects"
	}
	if cfg.HomeURL == "" {
		cfg.HomeURL = "https://%d.lauzhack.com/"
	}
	if cfg.Database == "" {
		cfg.Database = "dataset.db"
	}
	if cfg.DelayMs == 0 {
		cfg.DelayMs = 100
	}
	return cfg
}
