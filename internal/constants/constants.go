package constants

// ContextKeyUserID is the gin context key holding the authenticated user's ID.
const ContextKeyUserID = "user_id"

// ContextKeyUserEmail is the gin context key holding the authenticated user's email.
const ContextKeyUserEmail = "user_email"

const (
	MinPasswordLength = 8

	// MaxMessageLength bounds chat message content.
	MaxMessageLength = 1000

	DefaultHistoryLimit = 20
	// MaxPageSize is the server-side clamp on any page size a client requests.
	MaxPageSize = 100
	MinPageSize = 1
)

const (
	// TopicPublic is the broadcast topic for the global channel.
	TopicPublic = "/topic/public"
	// TopicProjectPrefix is the broadcast topic prefix for project channels.
	TopicProjectPrefix = "/topic/project/"
)
