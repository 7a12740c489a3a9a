package catalog

// DefaultBossHealth applies when a boss is created without health
const DefaultBossHealth = 500

// Log messages
const (
	LogMsgBossCreated        = "Boss created"
	LogMsgPhaseCreated       = "Phase created"
	LogMsgRarityCreated      = "Rarity created"
	LogMsgItemCreated        = "Item created"
	LogMsgItemUpdated        = "Item updated"
	LogMsgAchievementCreated = "Achievement created"
	LogMsgAchievementUpdated = "Achievement updated"
	LogMsgAchievementDeleted = "Achievement deleted"
	LogMsgSeedLoaded         = "Seed file loaded"
	LogMsgSeedSkipped        = "Seed entry already present, skipping"
	LogMsgSeedApplied        = "Seed applied"
)
