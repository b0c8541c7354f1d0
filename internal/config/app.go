package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

type AppConfig struct {
	API     APIConfig
	Audio   AudioConfig
	Speech  SpeechConfig
	Server  ServerConfig
	DataDir string
	Catalog string // путь к YAML каталогу, пусто означает встроенный
	Debug   bool
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

type AudioConfig struct {
	SampleRate int
	Channels   int
	Extension  string
}

type SpeechConfig struct {
	Command string
	Rate    float64
}

// ServerConfig офлайн сервер для разработки
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:3000/api"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
			UploadTimeout:  getEnvAsDuration("UPLOAD_TIMEOUT", 120*time.Second),
		},
		Audio: AudioConfig{
			SampleRate: getEnvAsInt("AUDIO_SAMPLE_RATE", 16000),
			Channels:   getEnvAsInt("AUDIO_CHANNELS", 1),
			Extension:  getEnv("AUDIO_EXTENSION", "wav"),
		},
		Speech: SpeechConfig{
			Command: getEnv("SPEECH_COMMAND", defaultSpeechCommand()),
			Rate:    getEnvAsFloat("SPEECH_RATE", 0.9),
		},
		Server: ServerConfig{
			Addr:            getEnv("MOCK_API_ADDR", ":3000"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		DataDir: getEnv("DATA_DIR", defaultDataDir()),
		Catalog: getEnv("CATALOG_PATH", ""),
		Debug:   getEnvAsBool("DEBUG", false),
	}
}

// Validate проверяет корректность конфигурации
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.API.RequestTimeout <= 0 || c.API.UploadTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT and UPLOAD_TIMEOUT must be positive")
	}

	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("AUDIO_SAMPLE_RATE must be positive")
	}

	if c.Audio.Channels < 1 || c.Audio.Channels > 2 {
		return fmt.Errorf("AUDIO_CHANNELS must be 1 or 2")
	}

	if c.Audio.Extension == "" {
		return fmt.Errorf("AUDIO_EXTENSION is required")
	}

	if c.Speech.Rate <= 0 || c.Speech.Rate > 2 {
		return fmt.Errorf("SPEECH_RATE must be between 0 and 2")
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	return nil
}

func defaultSpeechCommand() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak"
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".interview-practice"
	}
	return filepath.Join(home, ".interview-practice")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
