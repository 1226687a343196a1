package bootstrap

// Log messages for startup and shutdown
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStartingService      = "Starting delveforge"
	LogMsgConfigLoaded         = "Configuration loaded"
	LogMsgSyncingCatalog       = "Syncing item catalog from JSON config..."
	LogMsgCatalogSynced        = "Item catalog synced successfully"
	LogMsgCatalogUnchanged     = "Item catalog config unchanged, sync skipped"
	LogMsgSyncingAffixes       = "Syncing affix database from JSON config..."
	LogMsgAffixesSynced        = "Affix database synced successfully"
	LogMsgAffixesUnchanged     = "Affix database config unchanged, sync skipped"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced shutdown"
	LogMsgWorkerPoolStopped    = "Worker pool stopped"
	LogMsgShutdownComplete     = "Shutdown complete"
)
