package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port            int
	AcceptedOrigins []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration

	DatabaseURL       string
	DatabaseName      string
	OperationTimeout  time.Duration
	InquiryCollection string

	LogLevel       string
	LogFormat      string
	MetricsEnabled bool

	ResendAPIKey    string
	ResendFromEmail string
	NotifyEmails    []string
}

// Load builds a Config from the current environment.
func Load() Config {
	return FromMap(New())
}

// FromMap builds a Config from an environment snapshot.
func FromMap(env map[string]string) Config {
	return Config{
		Port:            GetInt(env, "PORT", 8000),
		AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS", []string{"*"}),
		ReadTimeout:     seconds(env, "READ_TIMEOUT_SECONDS", 10),
		WriteTimeout:    seconds(env, "WRITE_TIMEOUT_SECONDS", 20),
		IdleTimeout:     seconds(env, "IDLE_TIMEOUT_SECONDS", 120),

		DatabaseURL:       strings.TrimSpace(GetString(env, "DATABASE_URL", "")),
		DatabaseName:      strings.TrimSpace(GetString(env, "DATABASE_NAME", "")),
		OperationTimeout:  seconds(env, "DB_OPERATION_TIMEOUT_SECONDS", 10),
		InquiryCollection: GetString(env, "INQUIRY_COLLECTION", "inquiry"),

		LogLevel:       strings.ToLower(GetString(env, "LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(GetString(env, "LOG_FORMAT", "console")),
		MetricsEnabled: GetBool(env, "METRICS_ENABLED", true),

		ResendAPIKey:    GetString(env, "RESEND_API_KEY", ""),
		ResendFromEmail: GetString(env, "RESEND_FROM_EMAIL", ""),
		NotifyEmails:    GetList(env, "INQUIRY_NOTIFY_EMAILS", nil),
	}
}

// IsSet reports whether key is present and non-blank, without exposing its value.
func IsSet(env map[string]string, key string) bool {
	return strings.TrimSpace(GetString(env, key, "")) != ""
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetList splits a comma separated value, dropping blank entries.
func GetList(config map[string]string, key string, defaultValue []string) []string {
	s, ok := config[key]
	if !ok || strings.TrimSpace(s) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func seconds(config map[string]string, key string, defaultValue int) time.Duration {
	n := GetInt(config, key, defaultValue)
	if n <= 0 {
		n = defaultValue
	}
	return time.Duration(n) * time.Second
}
