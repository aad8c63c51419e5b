package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mzaleski/project-hub-api/internal/dto"
	"github.com/mzaleski/project-hub-api/internal/middleware"
	"github.com/mzaleski/project-hub-api/internal/models"
	"github.com/mzaleski/project-hub-api/internal/services"
)

// Inbound actions understood by the gateway.
const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
	actionSendMessage = "chat.sendMessage"
	actionAddUser     = "chat.addUser"
)

// clientEvent is an inbound gateway frame.
type clientEvent struct {
	Action    string  `json:"action"`
	Content   string  `json:"content"`
	ProjectID *uint64 `json:"projectId"`
}

// Gateway owns the /ws endpoint: it authenticates inbound connections,
// dispatches their frames, and publishes persisted messages through the hub.
//
// A connection with an invalid or missing bearer credential is not rejected;
// it proceeds anonymously and every send attempt gets an ERROR frame back.
type Gateway struct {
	hub           *Hub
	chatService   *services.ChatService
	accessService *services.ChatAccessService
	tokenService  *services.TokenService
	authService   *services.AuthService
	upgrader      websocket.Upgrader
}

// NewGateway creates a new Gateway.
func NewGateway(hub *Hub, chatService *services.ChatService, accessService *services.ChatAccessService, tokenService *services.TokenService, authService *services.AuthService) *Gateway {
	return &Gateway{
		hub:           hub,
		chatService:   chatService,
		accessService: accessService,
		tokenService:  tokenService,
		authService:   authService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the deployment front end.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades an HTTP request to a chat connection.
func (g *Gateway) HandleConnection(c *gin.Context) {
	user := g.resolveUser(c)

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat: upgrade failed: %v", err)
		return
	}

	client := newClient(g.hub, conn, user)
	go client.writePump()
	go client.readPump(g)
}

// resolveUser turns the connect-time bearer credential into a user. Any
// failure degrades the connection to anonymous instead of closing it.
func (g *Gateway) resolveUser(c *gin.Context) *models.User {
	token, ok := middleware.BearerToken(c)
	if !ok {
		// Browser WebSocket clients cannot set headers.
		token = c.Query("token")
	}
	if token == "" {
		return nil
	}

	claims, err := g.tokenService.Validate(token)
	if err != nil {
		return nil
	}

	user, err := g.authService.GetUser(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// dispatch routes one inbound frame.
func (g *Gateway) dispatch(client *Client, data []byte) {
	var evt clientEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		g.sendError(client, ChannelFor(nil), "Malformed message")
		return
	}

	ch := ChannelFor(evt.ProjectID)

	switch evt.Action {
	case actionSubscribe:
		g.handleSubscribe(client, ch, evt)
	case actionUnsubscribe:
		g.hub.Unsubscribe(client, ch)
	case actionSendMessage:
		g.handleSend(client, ch, evt)
	case actionAddUser:
		g.handleAddUser(client, ch, evt)
	default:
		g.sendError(client, ch, "Unknown action")
	}
}

func (g *Gateway) handleSubscribe(client *Client, ch Channel, evt clientEvent) {
	if !g.authorize(client, ch, evt.ProjectID, services.IntentRead) {
		return
	}
	g.hub.Subscribe(client, ch)
}

func (g *Gateway) handleSend(client *Client, ch Channel, evt clientEvent) {
	if !g.authorize(client, ch, evt.ProjectID, services.IntentWrite) {
		return
	}

	g.appendAndPublish(client, ch, services.AppendMessageInput{
		SenderID:  client.user.ID,
		ProjectID: evt.ProjectID,
		Content:   evt.Content,
		Type:      models.MessageTypeChat,
	})
}

func (g *Gateway) handleAddUser(client *Client, ch Channel, evt clientEvent) {
	if !g.authorize(client, ch, evt.ProjectID, services.IntentWrite) {
		return
	}

	g.appendAndPublish(client, ch, services.AppendMessageInput{
		SenderID:  client.user.ID,
		ProjectID: evt.ProjectID,
		Content:   client.user.FullName() + " joined the chat!",
		Type:      models.MessageTypeJoin,
	})
}

// authorize checks channel access and answers the client with an ERROR frame
// on denial. Denial never closes the connection.
func (g *Gateway) authorize(client *Client, ch Channel, projectID *uint64, intent services.AccessIntent) bool {
	if client.user == nil {
		g.sendError(client, ch, "User not authenticated")
		return false
	}

	allowed, err := g.accessService.CanAccess(client.user.ID, projectID, intent)
	if err != nil {
		log.Printf("chat: access check failed: %v", err)
		g.sendError(client, ch, "Failed to send message")
		return false
	}
	if !allowed {
		g.sendError(client, ch, "Access to channel denied")
		return false
	}
	return true
}

// appendAndPublish persists a message and fans it out, holding the channel's
// publish lock so stored order matches delivered order. A message that fails
// to persist is never published.
func (g *Gateway) appendAndPublish(client *Client, ch Channel, input services.AppendMessageInput) {
	g.hub.LockChannel(ch)
	defer g.hub.UnlockChannel(ch)

	message, err := g.chatService.Append(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageEmpty),
			errors.Is(err, services.ErrMessageTooLong):
			g.sendError(client, ch, err.Error())
		case errors.Is(err, services.ErrProjectNotFound),
			errors.Is(err, services.ErrSenderNotFound):
			g.sendError(client, ch, err.Error())
		default:
			log.Printf("chat: append failed: %v", err)
			g.sendError(client, ch, "Failed to send message")
		}
		return
	}

	payload := dto.ToChatMessagePayload(message, ch.Topic())
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("chat: marshal failed: %v", err)
		return
	}

	g.hub.Publish(ch, data)
}

// sendError delivers an ERROR frame to the offending connection only.
func (g *Gateway) sendError(client *Client, ch Channel, message string) {
	payload := dto.ChatMessagePayload{
		Topic:     ch.Topic(),
		Type:      "ERROR",
		Content:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	client.enqueue(data)
}
