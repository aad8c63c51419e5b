package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Chat message indexes for channel reads and history filters
		{"chat_messages", "idx_chat_messages_project_id", "project_id"},
		{"chat_messages", "idx_chat_messages_sender_id", "sender_id"},
		{"chat_messages", "idx_chat_messages_timestamp", "timestamp"},
		{"chat_messages", "idx_chat_messages_project_timestamp", "project_id, timestamp"},

		// Membership indexes for access checks
		{"project_memberships", "idx_project_memberships_project_id", "project_id"},
		{"project_memberships", "idx_project_memberships_user_id", "user_id"},

		// Project owner lookup
		{"projects", "idx_projects_owner_id", "owner_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
