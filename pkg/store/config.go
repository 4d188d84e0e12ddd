package store

import (
	"log"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies the storage root and the Microsoft Graph settings the
// push commands need.
type Config interface {
	BasePath() string
	Graph() GraphSettings
}

// GraphSettings carries the OneNote collaborator configuration. Only the
// client id is required for the device-code flow; tenant defaults to the
// multi-tenant "common" endpoint.
type GraphSettings struct {
	ClientID  string `json:"clientId"`
	Tenant    string `json:"tenant"`
	Notebook  string `json:"notebook"`
	Section   string `json:"section"`
	TokenFile string `json:"tokenFile"`
}

// LoadConfig reads the .inkpad config file (current directory or
// INKPAD_CONFIG_PATH) with INKPAD_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.inkpad")
	viper.SetDefault("graph.tenant", "common")
	viper.SetDefault("graph.notebook", "Inkpad")
	viper.SetDefault("graph.section", "Quick Notes")
	viper.SetDefault("graph.tokenfile", "~/.inkpad-token.json")
	viper.SetConfigName(".inkpad") // .yaml is implicit
	viper.SetEnvPrefix("INKPAD")
	viper.AutomaticEnv()

	if override := os.Getenv("INKPAD_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	return &fileConfig{
		Path: expand(viper.GetString("path")),
		Settings: GraphSettings{
			ClientID:  viper.GetString("graph.clientid"),
			Tenant:    viper.GetString("graph.tenant"),
			Notebook:  viper.GetString("graph.notebook"),
			Section:   viper.GetString("graph.section"),
			TokenFile: expand(viper.GetString("graph.tokenfile")),
		},
	}, nil
}

func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

type fileConfig struct {
	Path     string `json:"path"`
	Settings GraphSettings
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Graph() GraphSettings {
	return f.Settings
}
