package server

// Config holds the read-only settings shared by every connection
type Config struct {
	Addr      string // listen address
	Directory string // root for the files route, "" disables it
	LogLevel  string
}

// DefaultConfig returns the fixed loopback address the server has always
// used, with the files route disabled.
func DefaultConfig() Config {
	return Config{
		Addr:     "127.0.0.1:4221",
		LogLevel: "info",
	}
}
