package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding (json, console).
	Format string `mapstructure:"format" default:"console"`
	// Output is where log lines go: "stderr", "stdout" or a file path.
	// Reports printed by the CLI use stdout, so logs default to stderr.
	Output string `mapstructure:"output" default:"stderr"`
	// Collection labels every line with the collection being worked on.
	Collection string `mapstructure:"collection"`
}
