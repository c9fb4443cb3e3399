package models

import "time"

// HistoryItem is one recorded prompt/response exchange.
type HistoryItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt"`
	Response     string    `gorm:"type:text" json:"response"`
	ModelName    string    `gorm:"size:255" json:"modelName,omitempty"`
	TemplateName string    `gorm:"size:255" json:"templateName,omitempty"`
	Timestamp    time.Time `gorm:"index;not null" json:"timestamp"`
}
