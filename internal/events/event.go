package events

import "time"

// Topic names the store that changed. The UI subscribes to these.
type Topic string

const (
	TopicSettings  Topic = "settings:changed"
	TopicTemplates Topic = "templates:changed"
	TopicHistory   Topic = "history:changed"
	// TopicActivateUpdate asks the UI shell to activate a waiting offline cache immediately.
	TopicActivateUpdate Topic = "sw:skip-waiting"
)

// ChangeEvent is published after a store mutation has been persisted.
type ChangeEvent struct {
	Topic     Topic     `json:"topic"`
	Action    string    `json:"action"`
	ID        uint      `json:"id,omitempty"`
	Key       string    `json:"key,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(topic Topic, action string) ChangeEvent {
	return ChangeEvent{Topic: topic, Action: action, Timestamp: time.Now()}
}
