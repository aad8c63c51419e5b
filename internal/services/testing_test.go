package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/mzaleski/project-hub-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hashed",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, ownerID uint64) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:    name,
		Status:  models.ProjectStatusInProgress,
		OwnerID: ownerID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func addTestMember(t *testing.T, db *gorm.DB, projectID, userID uint64, role models.ProjectRole) {
	t.Helper()

	member := &models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	require.NoError(t, db.Create(member).Error)
}
