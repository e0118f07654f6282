package observability

// Metric name prefixes
const (
	MetricPrefix = "ledger_bot"
)

// Metric names
const (
	// Discord metrics
	CommandsTotal = MetricPrefix + ".discord.commands_total"

	// Ledger store metrics
	StoreCallsTotal   = MetricPrefix + ".store.calls_total"
	StoreCallDuration = MetricPrefix + ".store.call_duration"

	// Scheduler metrics
	BroadcastsTotal = MetricPrefix + ".leaderboard.broadcasts_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelCommand   = "command"
	LabelEventType = "event_type"
	LabelBackend   = "backend"
	LabelTable     = "table"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)
