package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingBossforge   = "Starting Bossforge"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Store Messages
// =============================================================================

const (
	LogMsgStoreSelected      = "Store selected"
	LogMsgMemoryStoreWarning = "Memory store in use, data is lost on restart"

	ErrMsgFailedConnectDB  = "failed to connect to database"
	ErrMsgFailedMigrate    = "failed to run migrations"
	ErrMsgUnknownStore     = "unknown store driver"
	ErrMsgFailedLoadSeed   = "failed to load seed file"
	ErrMsgFailedApplySeed  = "failed to apply seed file"
	ErrMsgFailedTokenSetup = "failed to create token service"
)

// =============================================================================
// Catalog Sync Messages
// =============================================================================

const (
	LogMsgSyncingCatalog   = "Syncing catalog from seed file..."
	LogMsgCatalogSynced    = "Catalog synced successfully"
	LogMsgCatalogUnchanged = "Catalog seed already applied, nothing created"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgLeaderboardRegistered      = "Leaderboard subscriber registered"
	LogMsgLeaderboardDisabled        = "Leaderboard disabled, REDIS_ADDR not set"
	LogMsgStreamingRegistered        = "Event streaming sink registered"
	LogMsgStreamingDisabled          = "Event streaming disabled, KAFKA_BROKERS not set"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedConnectRedis         = "failed to connect to redis"
	ErrMsgFailedConnectKafka         = "failed to create kafka producer"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"

	// Component names for shutdown logging
	ComponentNameSink  = "event sink"
	ComponentNameRedis = "redis client"
)

// Shutdown log message format (component name will be prepended)
const (
	LogMsgComponentCloseFailed = " close failed"
)
