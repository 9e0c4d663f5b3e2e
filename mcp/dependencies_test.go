package mcp

import (
	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/config"
)

func NewTestDependencies(fr domain.FileReader, cfg *config.Config, path string) *Dependencies {
	return &Dependencies{
		fileReader: fr,
		config:     cfg,
		configPath: path,
	}
}
