package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Initialize writes the default configuration into the directory. It refuses
// to overwrite an existing configuration.
func Initialize(dir string, logger *log.Logger) error {
	target := filepath.Join(dir, ConfigurationName)

	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%s already exists", target)
	}

	if err := os.WriteFile(target, defaultConfigData, 0644); err != nil {
		return err
	}

	logger.Printf("Wrote %s", target)
	return nil
}
