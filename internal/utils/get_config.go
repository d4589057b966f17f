package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	GatewayMode string `yaml:"GATEWAY_MODE"`

	// Recipe API configuration
	APIBaseURL        string `yaml:"API_BASE_URL"`
	APITimeoutSeconds int    `yaml:"API_TIMEOUT_SECONDS"`
	JWTSecret         string `yaml:"JWT_SECRET"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Form behaviour
	AccountSearchDebounceMS int `yaml:"ACCOUNT_SEARCH_DEBOUNCE_MS"`
	PageTTLSeconds          int `yaml:"PAGE_TTL_SECONDS"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:                 "3000",
		GatewayMode:             "http",
		APIBaseURL:              "http://localhost:8080/api/v1",
		APITimeoutSeconds:       15,
		AccountSearchDebounceMS: 300,
		PageTTLSeconds:          1800,
	}
}

// LoadConfig reads config.yaml, or the file named by CONFIG_PATH, over the defaults.
func LoadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnw("error reading YAML file", "path", path, "error", err)
		return
	}

	if err := ParseConfig(file); err != nil {
		log.Errorw("error parsing YAML file", "path", path, "error", err)
		return
	}

	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
}

// ParseConfig replaces the active configuration with defaults overlaid by raw.
func ParseConfig(raw []byte) error {
	parsed := defaultConfig()
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	config = parsed
	return nil
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "GATEWAY_MODE":
		return config.GatewayMode
	case "API_BASE_URL":
		return config.APIBaseURL
	case "API_TIMEOUT_SECONDS":
		return strconv.Itoa(config.APITimeoutSeconds)
	case "JWT_SECRET":
		return config.JWTSecret
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "ACCOUNT_SEARCH_DEBOUNCE_MS":
		return strconv.Itoa(config.AccountSearchDebounceMS)
	case "PAGE_TTL_SECONDS":
		return strconv.Itoa(config.PageTTLSeconds)
	default:
		return ""
	}
}

// GetDuration reads an integer config key and scales it by unit.
func GetDuration(key string, unit time.Duration) time.Duration {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * unit
}
