package leaderboard

// Redis keys
const (
	ExperienceKey = "leaderboard:experience"
	UsernamesKey  = "leaderboard:usernames"
)

// Limits for Top
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Log messages
const (
	LogMsgConnected     = "Connected to leaderboard redis"
	LogMsgUpdated       = "Leaderboard updated"
	LogMsgUpdateFailed  = "Leaderboard update failed"
	LogMsgPayloadDecode = "Failed to decode leaderboard payload"
)
