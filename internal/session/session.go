// Package session drives one connected client through login, the main menu,
// and the board features. Each session runs on its own goroutine and owns
// its connection; the stores and the presence registry are shared,
// explicitly injected collaborators.
package session

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/michaelneale/retrobbs/internal/presence"
	"github.com/michaelneale/retrobbs/internal/store"
	"github.com/michaelneale/retrobbs/internal/terminal"
)

// ErrDisconnect is returned when the client connection is lost.
var ErrDisconnect = errors.New("client disconnected")

// maxSigninAttempts is how many credential failures close the connection.
const maxSigninAttempts = 3

// state identifies where a session is in its menu flow.
type state int

const (
	stateAuthenticating state = iota
	stateMenu
	stateBoard
	stateBulletins
	statePresence
	stateTerminated
)

// Services holds the shared collaborators injected into every session.
type Services struct {
	Accounts  *store.Accounts
	Messages  *store.Messages
	Bulletins *store.Bulletins
	Online    *presence.Registry
}

// Session is the per-connection state machine.
type Session struct {
	ID     string
	Remote string
	Term   *terminal.Terminal

	svc Services

	state      state
	username   string
	registered bool
}

// New creates a session for an accepted connection.
func New(term *terminal.Terminal, remote string, svc Services) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Remote: remote,
		Term:   term,
		svc:    svc,
		state:  stateAuthenticating,
	}
}

// Run executes the session until logoff or disconnect. It always releases
// presence and closes the connection on the way out, whatever the exit path.
func (s *Session) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Session %s panic: %v", s.ID, r)
		}
		s.cleanup()
	}()

	log.Printf("Session %s connected from %s", s.ID, s.Remote)

	for s.state != stateTerminated {
		next, err := s.step()
		if err != nil {
			if !errors.Is(err, ErrDisconnect) {
				log.Printf("Session %s error: %v", s.ID, err)
			}
			return
		}
		s.state = next
	}
}

// step runs the handler for the current state and returns the next one.
func (s *Session) step() (state, error) {
	switch s.state {
	case stateAuthenticating:
		return s.authenticate()
	case stateMenu:
		return s.mainMenu()
	case stateBoard:
		return s.board()
	case stateBulletins:
		return s.bulletins()
	case statePresence:
		return s.whosOnline()
	}
	return stateTerminated, nil
}

// cleanup releases presence (at most once) and closes the connection. It is
// safe to reach from both the logoff path and abrupt-disconnect unwinding.
func (s *Session) cleanup() {
	s.logoff()
	s.Term.Close()
	log.Printf("Session %s disconnected (%s)", s.ID, s.Remote)
}

// login records a successful authentication and registers presence.
func (s *Session) login(username string) {
	s.username = username
	s.svc.Online.Add(username)
	s.registered = true
	log.Printf("Session %s authenticated as %s", s.ID, username)
}

// logoff removes the session's presence entry. Idempotent.
func (s *Session) logoff() {
	if s.registered {
		s.svc.Online.Remove(s.username)
		s.registered = false
	}
}

// fail reports a store failure to the client without leaking any detail.
func (s *Session) fail(err error) {
	log.Printf("Session %s store error: %v", s.ID, err)
	s.Term.SendLn("Server error. Please try again.")
}

// authenticate shows the welcome banner and branches to signup or signin.
func (s *Session) authenticate() (state, error) {
	s.Term.Send(welcomeBanner)

	have, err := s.Term.Ask("Do you have an account? (y/n): ")
	if err != nil {
		return stateTerminated, ErrDisconnect
	}

	if strings.HasPrefix(strings.ToLower(have), "n") {
		return s.signup()
	}
	return s.signin()
}

// signup prompts for a username until the account store accepts it, then
// takes a password and creates the account.
func (s *Session) signup() (state, error) {
	s.Term.Send("\r\n" + terminal.FgGreen + "Signup" + terminal.Reset + "\r\n")

	for {
		username, err := s.Term.Ask("Choose username: ")
		if err != nil {
			return stateTerminated, ErrDisconnect
		}
		if username == "" {
			continue
		}

		taken, err := s.svc.Accounts.Exists(username)
		if err != nil {
			s.fail(err)
			continue
		}
		if taken {
			s.Term.SendLn("Username taken. Try again.")
			continue
		}

		password, err := s.Term.Ask("Choose password: ")
		if err != nil {
			return stateTerminated, ErrDisconnect
		}

		if _, err := s.svc.Accounts.CreateIfAbsent(username, password); err != nil {
			// A concurrent signup can still take the name between the
			// Exists check and the create.
			if errors.Is(err, store.ErrUsernameTaken) {
				s.Term.SendLn("Username taken. Try again.")
			} else {
				s.fail(err)
			}
			continue
		}

		s.login(username)
		s.Term.SendLn(fmt.Sprintf("\r\nWelcome, %s!", username))
		return stateMenu, nil
	}
}

// signin gives the caller up to maxSigninAttempts credential checks, then
// closes the connection. No lockout is persisted.
func (s *Session) signin() (state, error) {
	s.Term.Send("\r\n" + terminal.FgBlue + "Login" + terminal.Reset + "\r\n")

	for attempt := 0; attempt < maxSigninAttempts; attempt++ {
		username, err := s.Term.Ask("Username: ")
		if err != nil {
			return stateTerminated, ErrDisconnect
		}
		password, err := s.Term.Ask("Password: ")
		if err != nil {
			return stateTerminated, ErrDisconnect
		}

		switch err := s.svc.Accounts.Verify(username, password); {
		case err == nil:
			s.login(username)
			s.Term.SendLn(fmt.Sprintf("\r\nWelcome back, %s!", username))
			return stateMenu, nil
		case errors.Is(err, store.ErrInvalidCredentials):
			s.Term.SendLn("Invalid credentials.")
		default:
			s.fail(err)
		}
	}

	s.Term.SendLn("Too many attempts. Bye.")
	return stateTerminated, nil
}
