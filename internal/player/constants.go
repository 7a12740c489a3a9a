package player

// Battle history paging
const (
	DefaultBattleLimit = 20
	MaxBattleLimit     = 100
)

// Log messages
const (
	LogMsgPlayerRegistered  = "Player registered"
	LogMsgPhaseCompleted    = "Phase completed"
	LogMsgPhaseAlreadyDone  = "Phase already completed"
	LogMsgBattleRecorded    = "Battle recorded"
	LogMsgAchievementGrant  = "Achievement granted"
	LogMsgItemAcquired      = "Item acquired"
	LogMsgItemRemoved       = "Item removed"
	LogMsgPlayerOverridden  = "Player progress overridden"
	LogMsgEventPublishError = "Failed to publish event"
)
