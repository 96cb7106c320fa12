package config

// Default values.
const (
	DefaultOutputDir = "results"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)
