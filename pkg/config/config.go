package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                 string // connection string for the database
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogConfig          string // path to log config file
	MigrationSourceURL string // location of migration files
	ArchiveUnsupported bool   // if true, replays with an unsupported version are recorded in the archive table
	OutputFormat       string // output format for the extract command (json vs pretty)
)

// Config holds the configuration values which are used by the application
type Config struct {
	PrintDocument bool // if true, the decoded document will be printed on debug level
}
