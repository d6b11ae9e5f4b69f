package config

const (
	defaultRetentionDays      = 14
	defaultRetentionTimezone  = "America/New_York"
	defaultRetentionHoldTag   = "0874ad561b6b9d147881db13dd4bcb96"
	defaultRequestTimeout     = 15
	defaultPipelineWorkers    = 8
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
	defaultNotifyTimeout      = 10
)

// Default returns a Config populated with repository defaults. Instance and
// the two directory locations have no sensible defaults and must come from
// the config file.
func Default() Config {
	return Config{
		Retention: Retention{
			Days:     defaultRetentionDays,
			Timezone: defaultRetentionTimezone,
			HoldTag:  defaultRetentionHoldTag,
		},
		ServiceNow: ServiceNow{
			RequestTimeout: defaultRequestTimeout,
		},
		Pipeline: Pipeline{
			Workers: defaultPipelineWorkers,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
	}
}
