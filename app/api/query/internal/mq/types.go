package mq

// QueryLogEvent is the audit record published to Kafka after each query.
type QueryLogEvent struct {
	QueryId        string `json:"query_id"`
	Prompt         string `json:"prompt"`
	ParsedJson     string `json:"parsed_json,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	NumResults     int    `json:"num_results"`
	Success        bool   `json:"success"`
	ErrorMessage   string `json:"error_message,omitempty"`
	UserIp         string `json:"user_ip,omitempty"`
}

// Asynq task type for retrying failed audit inserts
const TaskInsertQueryLog = "query:insert_log"
