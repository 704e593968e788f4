package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// ratingEvent is pushed to every connected feed client when a rating lands.
type ratingEvent struct {
	RecipeID uint   `json:"recipe_id"`
	Title    string `json:"title"`
	Score    int    `json:"score"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

var (
	feedClients = make(map[*websocket.Conn]bool)
	feedCh      = make(chan []byte, 100) // Buffered to keep handlers from blocking
	feedMu      = &sync.Mutex{}
	feedOnce    sync.Once
)

func startFeed() {
	feedOnce.Do(func() {
		go func() {
			for message := range feedCh {
				feedMu.Lock()
				for client := range feedClients {
					if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
						log.Printf("WebSocket write error: %v", err)
						client.Close()
						delete(feedClients, client)
					}
				}
				feedMu.Unlock()
			}
		}()
	})
}

func publishRating(event ratingEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case feedCh <- payload:
	default:
		// Drop the event rather than stall the request.
	}
}

func feedHandler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		feedMu.Lock()
		feedClients[conn] = true
		feedMu.Unlock()
		log.Println("Feed client connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				feedMu.Lock()
				delete(feedClients, conn)
				feedMu.Unlock()
				log.Println("Feed client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})
}
