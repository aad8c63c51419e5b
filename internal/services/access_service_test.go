package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/mzaleski/project-hub-api/internal/models"
	"github.com/mzaleski/project-hub-api/internal/repository"
)

func TestChatAccessService_GlobalChannel(t *testing.T) {
	db := setupTestDB(t)
	access := NewChatAccessService(repository.NewProjectRepository(db))

	user := createTestUser(t, db, "user@example.com")

	for _, intent := range []AccessIntent{IntentRead, IntentWrite} {
		allowed, err := access.CanAccess(user.ID, nil, intent)
		require.NoError(t, err)
		require.True(t, allowed, "authenticated user must access the global channel")
	}

	// Anonymous callers are denied on every channel.
	allowed, err := access.CanAccess(0, nil, IntentWrite)
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestChatAccessService_ProjectChannel(t *testing.T) {
	db := setupTestDB(t)
	access := NewChatAccessService(repository.NewProjectRepository(db))

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")
	manager := createTestUser(t, db, "manager@example.com")
	outsider := createTestUser(t, db, "outsider@example.com")

	project := createTestProject(t, db, "Project X", owner.ID)
	addTestMember(t, db, project.ID, member.ID, models.ProjectRoleMember)
	addTestMember(t, db, project.ID, manager.ID, models.ProjectRoleManager)

	cases := []struct {
		name    string
		userID  uint64
		allowed bool
	}{
		{"owner", owner.ID, true},
		{"member", member.ID, true},
		{"manager", manager.ID, true},
		{"outsider", outsider.ID, false},
		{"anonymous", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, intent := range []AccessIntent{IntentRead, IntentWrite} {
				allowed, err := access.CanAccess(tc.userID, &project.ID, intent)
				require.NoError(t, err)
				require.Equal(t, tc.allowed, allowed)
			}
		})
	}
}

func TestChatAccessService_UnknownProject(t *testing.T) {
	db := setupTestDB(t)
	access := NewChatAccessService(repository.NewProjectRepository(db))

	user := createTestUser(t, db, "user@example.com")

	missing := uint64(9999)
	allowed, err := access.CanAccess(user.ID, &missing, IntentRead)
	require.NoError(t, err, "denial is a result, not an error")
	require.False(t, allowed)
}
