package config

// JobsConfig schedules the background retention sweep.
type JobsConfig struct {
	Enabled           bool
	RetentionSpec     string // cron expression, robfig/cron standard parser
	SlotRetentionDays int    // blocks older than this many days are pruned
	LeadRetentionDays int    // leads older than this many days are pruned
}

// LoadJobsConfig reads JOBS_* and *_RETENTION_DAYS variables.
func LoadJobsConfig() JobsConfig {
	return JobsConfig{
		Enabled:           envBool("JOBS_ENABLED", true),
		RetentionSpec:     getenv("JOBS_RETENTION_SPEC", "15 3 * * *"),
		SlotRetentionDays: envInt("SLOT_RETENTION_DAYS", 90),
		LeadRetentionDays: envInt("LEAD_RETENTION_DAYS", 365),
	}
}
