package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultPromptDir is the subdirectory within the user's home directory.
const defaultPromptDir = ".config/taxo/prompts"

// LoadPromptContent resolves the path for a prompt template and reads its
// content. An absolute configuredPath is used directly; a relative or empty
// one is treated as a filename within ~/.config/taxo/prompts/. Returns "" if
// no template is configured and none exists at the default location, letting
// the categorizer fall back to its built-in template.
func LoadPromptContent(configuredPath, defaultFilename string) (string, error) {
	finalPath := configuredPath

	if !filepath.IsAbs(configuredPath) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		filename := configuredPath
		if filename == "" {
			filename = defaultFilename
		}
		finalPath = filepath.Join(homeDir, defaultPromptDir, filename)
	}

	promptBytes, err := os.ReadFile(finalPath)
	if err != nil {
		if os.IsNotExist(err) && configuredPath == "" {
			// Nothing configured and no default file: use the built-in.
			return "", nil
		}
		return "", fmt.Errorf("failed to read prompt file '%s': %w", finalPath, err)
	}
	return string(promptBytes), nil
}
