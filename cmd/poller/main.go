package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirehub/client"
	"hirehub/internal/middleware"
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "messaging server base URL")
		token     = flag.String("token", "", "bearer token (generated from -id/-email when empty)")
		userID    = flag.String("id", "", "user id to poll as")
		email     = flag.String("email", "", "user email to poll as")
		convEach  = flag.Duration("conversations-every", 15*time.Second, "conversation poll interval")
		notifEach = flag.Duration("notifications-every", 10*time.Second, "notification poll interval")
	)
	flag.Parse()

	bearer := *token
	if bearer == "" {
		if *userID == "" && *email == "" {
			log.Fatal("either -token or -id/-email is required")
		}
		if secret := os.Getenv("JWT_SECRET"); secret != "" {
			middleware.SetSecret(secret)
		}
		generated, err := middleware.GenerateToken(middleware.Identity{
			ID:    *userID,
			Email: *email,
			Role:  "user",
		})
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		bearer = generated
	}

	poller := client.NewPoller(client.Config{
		BaseURL:              *baseURL,
		Token:                bearer,
		ConversationInterval: *convEach,
		NotificationInterval: *notifEach,
	})

	log.Printf("Polling %s (conversations every %s, notifications every %s)", *baseURL, *convEach, *notifEach)
	poller.Start()
	defer poller.Stop()

	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-report.C:
			conversations := poller.Conversations()
			fmt.Printf("--- %d conversations, %d unread notifications ---\n",
				len(conversations), poller.UnreadCount())
			for _, c := range conversations {
				fmt.Printf("  %s: %q (%s)\n", c.Name, c.LastMessage, c.LastAt.Format(time.RFC3339))
			}
		case <-sigs:
			log.Println("Shutting down poller")
			return
		}
	}
}
