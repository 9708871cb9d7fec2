package constants

const (
	CallerReferencePrefix = "ptrsync-"
	DefaultLookupAddress  = "8.8.8.8"
	DefaultPtrTTL         = 300
	DefaultRegion         = "us-east-1"
	PtrZoneComment        = "Created by ptrsync for reverse DNS"
	SyncCompletedMessage  = "PTR records creation process completed."

	// Environment variables.
	ConfigSecretIdVariable = "CONFIG_SECRET_ID"
	ConfigFileVariable     = "PTR_CONFIG_FILE"
	DebugLevelVariable     = "PTR_DEBUG_LEVEL"
	LogDatestampsVariable  = "PTR_LOG_DATESTAMPS"
)
