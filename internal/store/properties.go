package store

// Keys of the values kept in Storage.
const (
	KeyCloudToken                = "push.cloud_token"
	KeyCloudTokenReported        = "push.cloud_token_reported"
	KeyPushServiceType           = "push.service_type"
	KeyReportedPushServiceType   = "push.reported_service_type"
	KeyPushRegistrationID        = "installation.push_registration_id"
	KeyPushRegistrationEnabled   = "installation.push_registration_enabled"
	KeyPrimary                   = "installation.primary"
	KeyUnreportedPrimary         = "installation.primary_unreported"
	KeyApplicationUserID         = "installation.application_user_id"
	KeyApplicationUserIDReported = "installation.application_user_id_reported"
	KeyReportedSystemDataHash    = "installation.reported_system_data_hash"
	KeyUnreportedSystemData      = "installation.unreported_system_data"
	KeyUniversalInstallationID   = "installation.universal_id"
	KeyInstallation              = "installation.data"

	KeyUserData           = "user.data"
	KeyUnreportedUserData = "user.unreported_data"

	// Sets.
	KeyUnreportedMessageIDs   = "messages.unreported_delivery_ids"
	KeyUnreportedSeenMessages = "messages.unreported_seen"
	KeySyncedMessageIDs       = "messages.synced_ids"
	KeyUnsentMOMessages       = "messages.unsent_mo"

	KeyMessagesLastSyncedAt = "messages.last_synced_at"

	KeyAPIBaseURL    = "api.base_url"
	KeyLastHTTPError = "api.last_error"

	KeyRetryMaxCount          = "retry.max_count"
	KeyRetryBackoffMultiplier = "retry.backoff_multiplier"

	KeySaveUserDataOnDisk = "settings.save_user_data"
	KeyReportSystemInfo   = "settings.report_system_info"

	// KeyStatsPrefix prefixes the per-kind error counters.
	KeyStatsPrefix = "stats."
)
