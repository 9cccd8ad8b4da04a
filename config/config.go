package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/camly/cli/lib/console"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Env string

const (
	// Local environment
	EnvLcl Env = "lcl"
	// Development environment
	EnvDev Env = "dev"
	// Production environment
	EnvPrd Env = "prd"
)

type APIConfig struct {
	// Camly API host.
	Host string `yaml:",omitempty"`
}

type AuthConfig struct {
	SessionToken string `yaml:"session_token,omitempty"`
	UserID       string `yaml:"user_id,omitempty"`
}

type Config struct {
	// Environment to run the CLI in.
	Env Env `yaml:",omitempty"`
	// Whether or not to print verbose output.
	Verbose bool
	//
	// [Internal]
	//
	// Camly website URL.
	WebsiteURL string `yaml:",omitempty"`
	// Camly API configuration.
	API  APIConfig `yaml:",omitempty"`
	Auth AuthConfig
	// Rate limiter for uploading files to storage.
	// Required to abide by rate limits set by storage providers.
	RateLimiter *rate.Limiter `yaml:"-"`
}

// Singleton CLI config instance.
var I Config

// Returns path to the Camly global config file.
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}

	return filepath.Join(homeDir, ".camly/config.yml")
}

// Returns the website URL based on the CLI environment.
func getWebsiteURL(env Env) string {
	switch env {
	case EnvDev:
		return "https://dev.camly.app"
	case EnvLcl:
		return "http://localhost:3000"
	default:
		// Production is the default
		return "https://camly.app"
	}
}

// Returns the Camly API host based on the CLI environment.
func getAPIHost(env Env) string {
	switch env {
	case EnvDev:
		return "https://api.dev.camly.app"
	case EnvLcl:
		return "http://localhost:8080"
	default:
		// Production is the default
		return "https://api.camly.app"
	}
}

// Initialize the CLI config.
func InitConfig() Config {
	cpath := GetConfigPath()

	// Create default config file if it doesn't exist yet
	if _, err := os.Stat(cpath); errors.Is(err, os.ErrNotExist) {
		// Create directories if they don't exist
		err := os.MkdirAll(filepath.Dir(cpath), 0755)
		if err != nil {
			log.Fatal(err)
		}

		I = Config{}

		// Write default config to file
		cYaml, err := yaml.Marshal(I)
		if err != nil {
			log.Fatal(err)
		}

		err = os.WriteFile(cpath, cYaml, 0644)
		if err != nil {
			log.Fatal(err)
		}

		// Set internal and default config fields
		SetInternalConfigFields(&I)
	} else {
		// Open file
		gcBytes, err := os.ReadFile(cpath)
		if err != nil {
			log.Fatal(err)
		}

		// Decode file contents
		var config Config
		err = yaml.Unmarshal(gcBytes, &config)
		if err != nil {
			log.Fatal(err)
		}

		// Set internal and default config fields
		SetInternalConfigFields(&config)

		// Set config instance
		I = config
	}

	if I.Verbose {
		// Print config as JSON
		cfgJson, err := json.MarshalIndent(I, "", "  ")
		if err != nil {
			log.Fatal(err)
		}

		console.Verbose("Config:")
		console.Verbose(string(cfgJson))
	}

	return I
}

// Set internal config fields.
func SetInternalConfigFields(config *Config) {
	// Set defaults for missing fields
	if config.Env == "" {
		config.Env = EnvPrd
	}

	// Set internal config fields
	config.WebsiteURL = getWebsiteURL(config.Env)
	config.API.Host = getAPIHost(config.Env)
	config.RateLimiter = rate.NewLimiter(rate.Every(time.Second/90), 1)
}

// Write the given config to the global config file, omitting internal fields.
func Save(config Config) error {
	// Remove internal config fields
	config.WebsiteURL = ""
	config.API.Host = ""
	config.RateLimiter = nil

	cYaml, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(GetConfigPath(), cYaml, 0644)
}
