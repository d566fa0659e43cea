package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the deployment configuration. It is read once at startup
// and passed by reference into the handlers, mailer and middleware rather
// than looked up from the environment ad hoc.
type Config struct {
	Port      int
	DataDir   string
	StaticDir string

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	EmailAdmin string

	AdminSecret string
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", 3000)
	v.SetDefault("data_dir", "data")
	v.SetDefault("static_dir", "src")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_secure", false)

	return &Config{
		Port:      v.GetInt("port"),
		DataDir:   v.GetString("data_dir"),
		StaticDir: v.GetString("static_dir"),

		SMTPHost:   v.GetString("smtp_host"),
		SMTPPort:   v.GetInt("smtp_port"),
		SMTPSecure: v.GetBool("smtp_secure"),
		SMTPUser:   v.GetString("smtp_user"),
		SMTPPass:   v.GetString("smtp_pass"),
		EmailFrom:  v.GetString("email_from"),
		EmailAdmin: v.GetString("email_admin"),

		AdminSecret: v.GetString("admin_secret"),
	}
}

// MailConfigured reports whether the deployment has a usable mail
// transport. Both the SMTP host and the sender address are required.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.EmailFrom != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DSN returns the sqlite connection string for the registration database.
func (c *Config) DSN() string {
	return fmt.Sprintf("file:%s?cache=shared&mode=rwc", filepath.Join(c.DataDir, "app.db"))
}

// EventsFile returns the path of the event catalog file.
func (c *Config) EventsFile() string {
	return filepath.Join(c.DataDir, "events.json")
}

// LegacyFile returns the path of the legacy JSON registration file that is
// imported into the database once at startup.
func (c *Config) LegacyFile() string {
	return filepath.Join(c.DataDir, "registrations.json")
}
