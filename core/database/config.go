package database

// Config holds settings for the embedded SQLite store.
type Config struct {
	// Path is the location of the database file; the containing
	// directory is created on first open.
	Path string `yaml:"path" envconfig:"DATABASE_PATH"`
	// MigrationsDir points to the directory with *.sql migration files.
	MigrationsDir string `yaml:"migrations_dir" envconfig:"DATABASE_MIGRATIONS_DIR"`
	// BusyTimeoutMS bounds how long a statement waits on a locked database.
	BusyTimeoutMS int `yaml:"busy_timeout_ms" envconfig:"DATABASE_BUSY_TIMEOUT_MS"`
}

const (
	defaultPath          = "data/shopping_list.db"
	defaultMigrationsDir = "migrations"
	defaultBusyTimeoutMS = 5000
)

// Normalize fills in defaults for unset fields.
func (c *Config) Normalize() {
	if c.Path == "" {
		c.Path = defaultPath
	}
	if c.MigrationsDir == "" {
		c.MigrationsDir = defaultMigrationsDir
	}
	if c.BusyTimeoutMS <= 0 {
		c.BusyTimeoutMS = defaultBusyTimeoutMS
	}
}
