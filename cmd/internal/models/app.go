package models

// App holds the general CLI flags.
type App struct {
	Help     bool
	Version  bool
	Verbose  bool
	LogLevel string
	LogJSON  bool
	Config   string
}
