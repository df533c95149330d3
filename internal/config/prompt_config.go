package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nomadreads/nomadreads-server/internal/infrastructure/logger"
)

// PromptConfig overrides the built-in prompt pair. Empty fields keep the defaults.
type PromptConfig struct {
	SystemPrompt     string `yaml:"system_prompt"`
	UserPromptPrefix string `yaml:"user_prompt_prefix"`
}

// LoadPromptConfig parses the yaml file at path. An empty path yields nil.
func LoadPromptConfig(path string) (*PromptConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read prompt config %q: %w", cleanPath, err)
	}

	var doc PromptConfig
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prompt config %q: %w", cleanPath, err)
	}

	if strings.TrimSpace(doc.SystemPrompt) == "" && doc.UserPromptPrefix == "" {
		return nil, fmt.Errorf("prompt config %q defines neither system_prompt nor user_prompt_prefix", cleanPath)
	}

	log := logger.GetLogger()
	log.Info().
		Str("path", cleanPath).
		Bool("system_prompt", doc.SystemPrompt != "").
		Bool("user_prompt_prefix", doc.UserPromptPrefix != "").
		Msg("loaded prompt overrides")

	return &doc, nil
}
