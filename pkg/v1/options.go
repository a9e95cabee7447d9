package v1

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	configPath string
	dataDir    string
	backend    string
}

// WithConfigFile loads settings from a snipman config file. Other options
// override what the file says.
func WithConfigFile(path string) Option {
	return func(c *clientConfig) {
		c.configPath = path
	}
}

// WithDataDir sets the directory holding the snippet store.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithBackend selects the storage backend ("git" or "sqlite").
func WithBackend(backend string) Option {
	return func(c *clientConfig) {
		c.backend = backend
	}
}
