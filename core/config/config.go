// Package config holds the shell's on-disk configuration.
package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const ConfigurationName = "config.yaml"

type Configuration struct {
	// Motd is printed once when an interactive session starts.
	Motd string `json:"motd"`

	// Prompt is the PS1 template used when the environment doesn't carry
	// one. Empty selects the built-in default.
	Prompt string `json:"prompt"`

	// DefaultPath seeds PATH for sessions started without one.
	DefaultPath string `json:"default_path" validate:"required"`

	// HistoryFile persists readline history between sessions; empty keeps
	// history in memory only.
	HistoryFile string `json:"history_file"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the embedded default configuration. It panics on an
// unparsable default because that can never happen at runtime.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
