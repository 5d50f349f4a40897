package terminal

import (
	"io"
	"net"
	"testing"
	"time"
)

func TestGetLineStripsWhitespace(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	term := New(server)

	go client.Write([]byte("  hello world \r\n"))

	lineCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		line, err := term.GetLine()
		if err != nil {
			errCh <- err
			return
		}
		lineCh <- line
	}()

	select {
	case line := <-lineCh:
		if line != "hello world" {
			t.Fatalf("expected %q, got %q", "hello world", line)
		}
	case err := <-errCh:
		t.Fatalf("GetLine returned error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("GetLine did not return")
	}
}

func TestGetLineReportsDisconnect(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	term := New(server)
	client.Close()

	if _, err := term.GetLine(); err == nil {
		t.Fatalf("expected error after peer close")
	}
}

func TestAskSendsPromptThenReads(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	term := New(server)

	lineCh := make(chan string, 1)
	go func() {
		line, err := term.Ask("Name: ")
		if err != nil {
			return
		}
		lineCh <- line
	}()

	prompt := make([]byte, 6)
	if _, err := io.ReadFull(client, prompt); err != nil {
		t.Fatalf("read prompt: %v", err)
	}
	if string(prompt) != "Name: " {
		t.Fatalf("expected prompt %q, got %q", "Name: ", prompt)
	}

	if _, err := client.Write([]byte("alice\n")); err != nil {
		t.Fatalf("client write: %v", err)
	}

	select {
	case line := <-lineCh:
		if line != "alice" {
			t.Fatalf("expected %q, got %q", "alice", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Ask did not return")
	}
}
