package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"echolearn/internal/db"
	"echolearn/internal/repository"
	"echolearn/internal/service"
)

// Smoke test for the notification stream against a running server:
// connects to /ws for the test user, triggers a coin award over HTTP,
// and waits for the coins_awarded event to arrive.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ur := repository.NewUserRepository(pool)
	u, err := ur.GetByEmail(context.Background(), "tester@example.com")
	if err != nil {
		log.Fatalf("test user missing, run create_test_user first: %v", err)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	wsURL := fmt.Sprintf("ws://localhost:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("ws dial: %v", err)
	}
	defer conn.Close()
	log.Println("connected to notification stream")

	body, _ := json.Marshal(map[string]string{"activity": "study"})
	req, _ := http.NewRequest("POST", fmt.Sprintf("http://localhost:%s/api/v1/coins/award", port), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("award request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Fatalf("award request status %d", res.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("no notification received: %v", err)
	}
	log.Printf("received: %s\n", msg)
}
