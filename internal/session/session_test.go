package session_test

import (
	"bytes"
	"io"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelneale/retrobbs/internal/presence"
	"github.com/michaelneale/retrobbs/internal/session"
	"github.com/michaelneale/retrobbs/internal/store"
	"github.com/michaelneale/retrobbs/internal/terminal"
)

// transcript captures session output; safe to read while the drain goroutine
// is still writing.
type transcript struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (tr *transcript) Write(p []byte) (int, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.buf.Write(p)
}

func (tr *transcript) String() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.buf.String()
}

// client is one driven session: its pipe end, lifecycle channels, and the
// captured output.
type client struct {
	conn    net.Conn
	done    chan struct{}
	drained chan struct{}
	out     *transcript
}

func newServices(t *testing.T) session.Services {
	t.Helper()
	dir := t.TempDir()

	accounts, err := store.NewAccounts(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	messages, err := store.NewMessages(filepath.Join(dir, "messages.json"))
	require.NoError(t, err)
	bulletins, err := store.NewBulletins(filepath.Join(dir, "bulletins.json"))
	require.NoError(t, err)

	return session.Services{
		Accounts:  accounts,
		Messages:  messages,
		Bulletins: bulletins,
		Online:    presence.NewRegistry(),
	}
}

// startSession runs a session over a net.Pipe and returns the client side.
func startSession(t *testing.T, svc session.Services) *client {
	t.Helper()
	serverConn, clientConn := net.Pipe()

	c := &client{
		conn:    clientConn,
		done:    make(chan struct{}),
		drained: make(chan struct{}),
		out:     &transcript{},
	}

	go func() {
		session.New(terminal.New(serverConn), "pipe", svc).Run()
		close(c.done)
	}()
	go func() {
		io.Copy(c.out, clientConn)
		close(c.drained)
	}()

	return c
}

// send writes input lines to the session.
func (c *client) send(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
			t.Fatalf("write %q: %v", line, err)
		}
	}
}

// wait blocks until the session has terminated and its output is captured.
func (c *client) wait(t *testing.T) string {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		c.conn.Close()
		t.Fatal("session did not terminate")
	}
	select {
	case <-c.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("session output not drained")
	}
	return c.out.String()
}

// runScript drives a fresh session through the given input and returns the
// full transcript.
func runScript(t *testing.T, svc session.Services, lines ...string) string {
	t.Helper()
	c := startSession(t, svc)
	c.send(t, lines...)
	return c.wait(t)
}

// waitContains polls a session's transcript until the substring shows up.
func waitContains(t *testing.T, tr *transcript, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(tr.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("transcript never contained %q:\n%s", want, tr.String())
}

func waitOnline(t *testing.T, reg *presence.Registry, name string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if reg.Online(name) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("%s never came online", name)
}

func TestSignupPostListReadLogoff(t *testing.T) {
	svc := newServices(t)

	out := runScript(t, svc,
		"n",            // no account
		"alice", "pw1", // signup
		"1",                     // message board
		"P", "hi", "line1", ".", // post
		"L",      // list
		"R", "1", // read
		"B", // back to main menu
		"3", // who's online
		"4", // logoff
	)

	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "Posted.")
	assert.Contains(t, out, "Subject: hi")
	assert.Contains(t, out, "From: alice")
	assert.Contains(t, out, "line1")
	assert.Contains(t, out, "Online: alice")
	assert.Contains(t, out, "Goodbye!")

	// Listing shows one row with the subject and the author.
	var row string
	for _, line := range strings.Split(out, "\r\n") {
		if strings.Contains(line, "hi") && strings.Contains(line, "alice") {
			row = line
			break
		}
	}
	require.NotEmpty(t, row, "listing row not found in transcript:\n%s", out)

	msgs, err := svc.Messages.List()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Subject)
	assert.Equal(t, "line1", msgs[0].Body)
	assert.Equal(t, "alice", msgs[0].From)

	assert.False(t, svc.Online.Online("alice"), "presence must be released on logoff")
}

func TestSigninThreeStrikesCloses(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Accounts.CreateIfAbsent("alice", "pw1")
	require.NoError(t, err)

	out := runScript(t, svc,
		"y",
		"alice", "bad",
		"alice", "nope",
		"alice", "wrong",
	)

	assert.Equal(t, 3, strings.Count(out, "Invalid credentials."))
	assert.Contains(t, out, "Too many attempts. Bye.")
	assert.False(t, svc.Online.Online("alice"))
}

func TestSigninSucceedsAfterFailure(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Accounts.CreateIfAbsent("alice", "pw1")
	require.NoError(t, err)

	out := runScript(t, svc,
		"y",
		"alice", "bad",
		"alice", "pw1",
		"4",
	)

	assert.Contains(t, out, "Invalid credentials.")
	assert.Contains(t, out, "Welcome back, alice!")
	assert.False(t, svc.Online.Online("alice"))
}

func TestSignupRepromptsOnTakenOrEmptyUsername(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Accounts.CreateIfAbsent("alice", "pw1")
	require.NoError(t, err)

	out := runScript(t, svc,
		"n",
		"",      // empty: silent re-prompt
		"alice", // taken
		"bob", "pw2",
		"4",
	)

	assert.Contains(t, out, "Username taken. Try again.")
	assert.Contains(t, out, "Welcome, bob!")
	assert.Equal(t, 3, strings.Count(out, "Choose username: "))
}

func TestUnknownMenuInputReprompts(t *testing.T) {
	svc := newServices(t)

	out := runScript(t, svc,
		"n", "carol", "pw",
		"9",
		"4",
	)

	assert.Contains(t, out, "Unknown selection.")
	assert.GreaterOrEqual(t, strings.Count(out, "Main Menu"), 2)
	assert.Contains(t, out, "Goodbye!")
}

func TestBoardInvalidReadInput(t *testing.T) {
	svc := newServices(t)

	out := runScript(t, svc,
		"n", "eve", "pw",
		"1",
		"L",        // empty board
		"R", "abc", // non-numeric
		"R", "5", // out of range
		"B",
		"4",
	)

	assert.Contains(t, out, "No messages yet.")
	assert.Equal(t, 2, strings.Count(out, "Invalid message number."))
}

func TestPostWithEmptySubject(t *testing.T) {
	svc := newServices(t)

	out := runScript(t, svc,
		"n", "frank", "pw",
		"1",
		"P", "", "some body text", ".",
		"L",
		"B",
		"4",
	)

	assert.Contains(t, out, "Posted.")
	assert.Contains(t, out, store.NoSubject)
}

func TestBulletins(t *testing.T) {
	svc := newServices(t)
	bulls, err := svc.Bulletins.List()
	require.NoError(t, err)
	require.NotEmpty(t, bulls)
	title := bulls[0].Title

	out := runScript(t, svc,
		"n", "gina", "pw",
		"2", "1", // read first bulletin
		"2", "99", // out of range: back to menu
		"2", "xyz", // non-numeric: back to menu
		"2", "b", // explicit back
		"4",
	)

	assert.Contains(t, out, title+"\r\n"+strings.Repeat("-", len(title)))
	assert.Equal(t, 2, strings.Count(out, "Invalid selection."))
	assert.Contains(t, out, "Goodbye!")
}

func TestDisconnectReleasesPresence(t *testing.T) {
	svc := newServices(t)

	c := startSession(t, svc)
	c.send(t, "n", "bob", "pw")
	waitOnline(t, svc.Online, "bob")

	// Abrupt disconnect while sitting at the main menu.
	c.conn.Close()
	c.wait(t)

	assert.False(t, svc.Online.Online("bob"), "presence must be released on disconnect")
}

func TestConcurrentSessions(t *testing.T) {
	svc := newServices(t)

	c1 := startSession(t, svc)
	c2 := startSession(t, svc)

	c1.send(t, "n", "alice", "pw1")
	c2.send(t, "n", "bob", "pw2")
	waitOnline(t, svc.Online, "alice")
	waitOnline(t, svc.Online, "bob")

	// Session one sees both users online while both are connected.
	c1.send(t, "3")
	waitContains(t, c1.out, "Online: alice, bob")

	c1.send(t, "1", "P", "from alice", "hello", ".", "B")
	c2.send(t, "1", "P", "from bob", "hi there", ".", "B")

	c1.send(t, "4")
	c2.send(t, "4")

	c1.wait(t)
	c2.wait(t)

	msgs, err := svc.Messages.List()
	require.NoError(t, err)
	require.Len(t, msgs, 2, "no post may be lost")

	subjects := []string{msgs[0].Subject, msgs[1].Subject}
	assert.ElementsMatch(t, []string{"from alice", "from bob"}, subjects)

	assert.Empty(t, svc.Online.List())
}
