package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a connection to the hub under conversationID and blocks
// until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, conversationID string, onMessage MessageHandler) {
	client := &Client{
		Hub:            hub,
		Conn:           c,
		ConversationID: conversationID,
		Send:           make(chan []byte, 256),
		onMessage:      onMessage,
	}
	if !hub.Register(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
