// Package server accepts incoming TCP connections for the board.
package server

import (
	"fmt"
	"log"
	"net"
	"strconv"
)

// ConnectionHandler is called for each accepted connection, on its own
// goroutine. The handler owns the connection and must close it.
type ConnectionHandler func(conn net.Conn)

// Listener accepts incoming connections and hands each to the handler.
// It never blocks on a session's lifetime.
type Listener struct {
	addr    string
	handler ConnectionHandler
}

// NewListener creates a TCP listener for the given host and port.
func NewListener(host string, port int, handler ConnectionHandler) *Listener {
	return &Listener{
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		handler: handler,
	}
}

// ListenAndServe starts accepting connections. Blocks until a fatal error
// occurs; per-connection accept errors are logged and skipped.
func (l *Listener) ListenAndServe() error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", l.addr, err)
	}
	defer ln.Close()

	log.Printf("BBS listening on %s", l.addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("Accept error: %v", err)
			continue
		}

		go l.handler(conn)
	}
}
