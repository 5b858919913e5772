package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"store": map[string]interface{}{
			"path":         GetDefaultStorePath(),
			"lock_timeout": 3,
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"interactive":    true,
			"title_width":    40,
			"list_width":     24,
		},
		"log": map[string]interface{}{
			"file":      "", // empty discards log output
			"verbosity": 0,
		},
		"notify": map[string]interface{}{
			"interval":  900,
			"lookahead": 3600,
		},
		"defaults": map[string]interface{}{
			"list": "", // empty means the first list
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.remind/config.yaml"
}

func GetDefaultStorePath() string {
	return "~/.remind/reminders.db"
}
