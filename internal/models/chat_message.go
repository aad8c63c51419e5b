package models

import "time"

type MessageType string

const (
	MessageTypeChat  MessageType = "CHAT"
	MessageTypeJoin  MessageType = "JOIN"
	MessageTypeLeave MessageType = "LEAVE"
)

// ChatMessage is an immutable chat log entry. A nil ProjectID means the
// message belongs to the global channel.
type ChatMessage struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	SenderID  uint64      `gorm:"not null;index" json:"sender_id"`
	ProjectID *uint64     `gorm:"index" json:"project_id"`
	Content   string      `gorm:"type:varchar(1000);not null" json:"content"`
	Type      MessageType `gorm:"type:varchar(10);not null;default:'CHAT'" json:"type"`
	Timestamp time.Time   `gorm:"not null;index;autoCreateTime" json:"timestamp"`

	// Relations
	Sender  User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
