package streaming

// Message header names
const (
	HeaderEventType    = "event_type"
	HeaderEventVersion = "event_version"
	HeaderEventID      = "event_id"
)

// Log messages
const (
	LogMsgProducerReady = "Kafka producer ready"
	LogMsgEventSent     = "Event streamed"
	LogMsgSendFailed    = "Failed to stream event"
)
