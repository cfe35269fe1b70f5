package config

import (
	"log"
	"os"

	"github.com/veritas-labs/veritas/src/data"
	"gorm.io/gorm"
)

type Config struct {
	Port     string
	MySQLDSN string
	RedisURL string

	// Registry persistence: "file" or "mysql".
	RegistryStore string
	RegistryPath  string

	// Provider credentials. Empty key = provider not configured.
	ExaKey        string
	TavilyKey     string
	SciraKey      string
	OpenAIKey     string
	GroqKey       string
	TwitterBearer string
}

// Load reads configuration from the settings table with env fallbacks.
// The DSN itself always comes from the environment since it is needed
// before the settings table can be read.
func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	return Config{
		Port:          getSetting("port", "PORT", "8080"),
		MySQLDSN:      data.GetMySQLDSN(),
		RedisURL:      getSetting("redis_url", "REDIS_URL", ""),
		RegistryStore: getSetting("registry_store", "REGISTRY_STORE", "file"),
		RegistryPath:  getSetting("registry_path", "REGISTRY_PATH", "source_registry.json"),
		ExaKey:        getSetting("exa_api_key", "EXA_API_KEY", ""),
		TavilyKey:     getSetting("tavily_api_key", "TAVILY_API_KEY", ""),
		SciraKey:      getSetting("scira_api_key", "SCIRA_API_KEY", ""),
		OpenAIKey:     getSetting("openai_api_key", "OPENAI_API_KEY", ""),
		GroqKey:       getSetting("groq_api_key", "GROQ_API_KEY", ""),
		TwitterBearer: getSetting("twitter_bearer_token", "TWITTER_BEARER_TOKEN", ""),
	}
}

func getSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return val
}
