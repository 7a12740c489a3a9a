package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing or still referenced
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Player Operations
const (
	ErrMsgFailedToInsertPlayer   = "failed to insert player"
	ErrMsgFailedToGetPlayer      = "failed to get player"
	ErrMsgFailedToListPlayers    = "failed to list players"
	ErrMsgFailedToLockPlayer     = "failed to lock player"
	ErrMsgFailedToUpdateProgress = "failed to update player progress"
	ErrMsgFailedToGetPlayerStats = "failed to get player stats"
	ErrMsgFailedToScanPlayer     = "failed to scan player"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToInsertBoss        = "failed to insert boss"
	ErrMsgFailedToGetBoss           = "failed to get boss"
	ErrMsgFailedToListBosses        = "failed to list bosses"
	ErrMsgFailedToInsertPhase       = "failed to insert phase"
	ErrMsgFailedToGetPhase          = "failed to get phase"
	ErrMsgFailedToListPhases        = "failed to list phases"
	ErrMsgFailedToInsertRarity      = "failed to insert rarity"
	ErrMsgFailedToGetRarity         = "failed to get rarity"
	ErrMsgFailedToListRarities      = "failed to list rarities"
	ErrMsgFailedToInsertItem        = "failed to insert item"
	ErrMsgFailedToGetItem           = "failed to get item"
	ErrMsgFailedToListItems         = "failed to list items"
	ErrMsgFailedToUpdateItem        = "failed to update item"
	ErrMsgFailedToDeleteItem        = "failed to delete item"
	ErrMsgFailedToInsertAchievement = "failed to insert achievement"
	ErrMsgFailedToGetAchievement    = "failed to get achievement"
	ErrMsgFailedToListAchievements  = "failed to list achievements"
	ErrMsgFailedToUpdateAchievement = "failed to update achievement"
	ErrMsgFailedToDeleteAchievement = "failed to delete achievement"
)

// Error Messages - Progress Operations
const (
	ErrMsgFailedToGetInventory     = "failed to get inventory"
	ErrMsgFailedToUpdateInventory  = "failed to update inventory"
	ErrMsgFailedToGetCompletion    = "failed to get phase completion"
	ErrMsgFailedToInsertCompletion = "failed to insert phase completion"
	ErrMsgFailedToListCompletions  = "failed to list phase completions"
	ErrMsgFailedToListGrants       = "failed to list achievement grants"
	ErrMsgFailedToInsertGrant      = "failed to insert achievement grant"
	ErrMsgFailedToInsertBattle     = "failed to insert battle record"
	ErrMsgFailedToListBattles      = "failed to list battle records"
)
