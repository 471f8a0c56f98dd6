package constants

const (
	AppName            = "journey"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/journey/config.toml"
	DefaultDBPath      = "~/.config/journey/journey.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthLabelFormat renders a full month name and four digit year ("October 2026")
	MonthLabelFormat = "January 2006"

	// Goal defaults carried over from the onboarding screen
	DefaultSubject  = "Swift"
	DefaultDuration = "Week"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "journey-"
	BackupFileSuffix = ".db"

	// Log file constants
	LogDirName      = "logs"
	LogFileName     = "journey.log"
	LogMaxSizeMB    = 10
	LogMaxBackups   = 3
	LogMaxAgeDays   = 28
	DefaultTimezone = "Local"

	// Environment variables
	EnvDBPath       = "JOURNEY_DB_PATH"
	EnvDBConnection = "JOURNEY_DB_CONNECTION"
	EnvTimezone     = "JOURNEY_TIMEZONE"
	EnvDebug        = "JOURNEY_DEBUG"
	EnvLogDir       = "JOURNEY_LOG_DIR"
)
