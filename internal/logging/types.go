package logging

import "time"

// #region event-type
// EventType names a session_events row.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventRuleChange   EventType = "rule_change"
	EventSessionEnd   EventType = "session_end"
)

// #endregion event-type

// #region session-event
// SessionEvent is a single row in the session_events table.
type SessionEvent struct {
	SessionID  string
	EventType  EventType
	DetailJSON string
	CreatedAt  time.Time
}

// #endregion session-event

// #region rule-change-detail
// RuleChangeDetail is serialized into detail_json for rule_change events.
type RuleChangeDetail struct {
	Trial      int    `json:"trial"`
	NewRule    string `json:"new_rule"`
	Categories int    `json:"categories"`
}

// #endregion rule-change-detail
