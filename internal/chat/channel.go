package chat

import (
	"strconv"

	"github.com/mzaleski/project-hub-api/internal/constants"
)

// Channel is the logical routing key for chat fan-out: the global channel or
// a single project's channel.
type Channel string

// GlobalChannel is the channel shared by all authenticated users.
const GlobalChannel Channel = "global"

// ProjectChannel returns the channel of a single project.
func ProjectChannel(projectID uint64) Channel {
	return Channel("project:" + strconv.FormatUint(projectID, 10))
}

// ChannelFor maps a message scope to its channel. A nil projectID means the
// global channel.
func ChannelFor(projectID *uint64) Channel {
	if projectID == nil {
		return GlobalChannel
	}
	return ProjectChannel(*projectID)
}

// Topic returns the broadcast topic clients subscribe to for this channel.
func (ch Channel) Topic() string {
	if ch == GlobalChannel {
		return constants.TopicPublic
	}
	return constants.TopicProjectPrefix + string(ch[len("project:"):])
}
