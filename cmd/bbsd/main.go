package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/michaelneale/retrobbs/internal/config"
	"github.com/michaelneale/retrobbs/internal/presence"
	"github.com/michaelneale/retrobbs/internal/server"
	"github.com/michaelneale/retrobbs/internal/session"
	"github.com/michaelneale/retrobbs/internal/store"
	"github.com/michaelneale/retrobbs/internal/terminal"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting %s", cfg.BBS.Name)

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Open the snapshot stores, creating and seeding them on first run
	accounts, err := store.NewAccounts(cfg.Paths.UsersFile())
	if err != nil {
		log.Fatalf("Failed to open account store: %v", err)
	}
	messages, err := store.NewMessages(cfg.Paths.MessagesFile())
	if err != nil {
		log.Fatalf("Failed to open message store: %v", err)
	}
	bulletins, err := store.NewBulletins(cfg.Paths.BulletinsFile())
	if err != nil {
		log.Fatalf("Failed to open bulletin store: %v", err)
	}

	online := presence.NewRegistry()

	svc := session.Services{
		Accounts:  accounts,
		Messages:  messages,
		Bulletins: bulletins,
		Online:    online,
	}

	listener := server.NewListener(cfg.Server.Host, cfg.Server.Port, func(conn net.Conn) {
		term := terminal.New(conn)
		session.New(term, conn.RemoteAddr().String(), svc).Run()
	})

	go func() {
		if err := listener.ListenAndServe(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	fmt.Printf("\n%s is running on %s:%d\n", cfg.BBS.Name, cfg.Server.Host, cfg.Server.Port)
	fmt.Println("Press Ctrl+C to shut down.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	// In-flight sessions are simply dropped; presence is not persisted.
	log.Printf("Received signal %v, shutting down.", sig)
}
