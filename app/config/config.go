package config

import "github.com/spf13/viper"

// Config holds the runtime settings, all overridable through TODO_*
// environment variables.
type Config struct {
	Addr          string
	DBPath        string
	SessionSecret string
	SessionName   string
	CORSOrigin    string
}

// Load reads configuration from the environment with dev defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TODO")
	v.AutomaticEnv()

	v.SetDefault("addr", "0.0.0.0:8080")
	v.SetDefault("db_path", "todo_app.db")
	v.SetDefault("session_secret", "dev-secret-key-change-in-production")
	v.SetDefault("session_name", "tasknest_session")
	v.SetDefault("cors_origin", "http://localhost:3000")

	return &Config{
		Addr:          v.GetString("addr"),
		DBPath:        v.GetString("db_path"),
		SessionSecret: v.GetString("session_secret"),
		SessionName:   v.GetString("session_name"),
		CORSOrigin:    v.GetString("cors_origin"),
	}, nil
}
