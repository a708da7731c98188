package config

// File represents the structure of the .phishscore configuration file.
// Zero values leave the corresponding setting untouched.
type File struct {
	// DBDir overrides the database directory.
	DBDir string `yaml:"dbDir,omitempty"`

	// ModelDir overrides the classifier artifact directory.
	ModelDir string `yaml:"modelDir,omitempty"`

	// BatchSize overrides the scan concurrency.
	BatchSize int `yaml:"batchSize,omitempty"`

	// NoSave disables recording of scans.
	NoSave bool `yaml:"noSave,omitempty"`

	// Server holds the HTTP API settings.
	Server ServerFile `yaml:"server,omitempty"`
}

// ServerFile holds the serve command settings in the configuration file.
type ServerFile struct {
	// Addr is the listen address, for example ":5000".
	Addr string `yaml:"addr,omitempty"`

	// AllowedOrigins are the CORS origins. Empty keeps the default "*".
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`

	// LogFormat is text, json or pretty.
	LogFormat string `yaml:"logFormat,omitempty"`
}

// Apply copies the non-zero settings of the file into cfg.
func (f *File) Apply(cfg *Config) {
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}
	if f.ModelDir != "" {
		cfg.ModelDir = f.ModelDir
	}
	if f.BatchSize != 0 {
		cfg.BatchSize = f.BatchSize
	}
	if f.NoSave {
		cfg.SaveToDB = false
	}
	if f.Server.Addr != "" {
		cfg.Addr = f.Server.Addr
	}
	if len(f.Server.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = f.Server.AllowedOrigins
	}
	if f.Server.LogFormat != "" {
		cfg.LogFormat = f.Server.LogFormat
	}
}
