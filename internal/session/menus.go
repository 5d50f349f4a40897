package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/michaelneale/retrobbs/internal/store"
	"github.com/michaelneale/retrobbs/internal/terminal"
)

// bodyWidth is the column width message and bulletin bodies wrap to.
const bodyWidth = 70

// mainMenu presents the four-option main menu. Unrecognized input re-prompts
// without changing state.
func (s *Session) mainMenu() (state, error) {
	choice, err := s.Term.Ask(mainMenuText)
	if err != nil {
		return stateTerminated, ErrDisconnect
	}

	switch strings.ToLower(choice) {
	case "1":
		return stateBoard, nil
	case "2":
		return stateBulletins, nil
	case "3":
		return statePresence, nil
	case "4":
		s.Term.SendLn("Goodbye!")
		s.logoff()
		return stateTerminated, nil
	default:
		s.Term.SendLn("Unknown selection.")
		return stateMenu, nil
	}
}

// board runs the message board sub-loop until the user backs out.
func (s *Session) board() (state, error) {
	for {
		choice, err := s.Term.Ask(boardMenuText)
		if err != nil {
			return stateTerminated, ErrDisconnect
		}

		switch strings.ToLower(choice) {
		case "l":
			s.listMessages()
		case "r":
			if err := s.readMessage(); err != nil {
				return stateTerminated, err
			}
		case "p":
			if err := s.postMessage(); err != nil {
				return stateTerminated, err
			}
		case "b":
			return stateMenu, nil
		default:
			s.Term.SendLn("Unknown option.")
		}
	}
}

// listMessages renders the board index: position, truncated date and author,
// subject.
func (s *Session) listMessages() {
	msgs, err := s.svc.Messages.List()
	if err != nil {
		s.fail(err)
		return
	}
	if len(msgs) == 0 {
		s.Term.SendLn("No messages yet.")
		return
	}

	s.Term.SendLn("")
	s.Term.SendLn("#  Date (UTC)           From       Subject")
	for i, m := range msgs {
		s.Term.SendLn(fmt.Sprintf("%2d %-20s %-10s %s",
			i+1, shortTime(m.Created), truncate(m.From, 10), m.Subject))
	}
}

// readMessage prompts for a 1-based position and renders that message.
// Non-numeric input and an out-of-range position get the same generic line.
func (s *Session) readMessage() error {
	raw, err := s.Term.Ask("Read which #: ")
	if err != nil {
		return ErrDisconnect
	}

	pos, convErr := strconv.Atoi(raw)
	if convErr != nil {
		s.Term.SendLn("Invalid message number.")
		return nil
	}

	m, err := s.svc.Messages.Read(pos)
	switch {
	case errors.Is(err, store.ErrOutOfRange):
		s.Term.SendLn("Invalid message number.")
	case err != nil:
		s.fail(err)
	default:
		s.Term.SendLn("")
		s.Term.SendLn("Subject: " + m.Subject)
		s.Term.SendLn("From: " + m.From)
		s.Term.SendLn("Date: " + m.Created.UTC().Format(time.RFC3339))
		s.Term.SendLn("")
		for _, line := range terminal.Wrap(m.Body, bodyWidth) {
			s.Term.SendLn(line)
		}
		s.Term.SendLn("")
	}
	return nil
}

// postMessage reads a subject and a dot-terminated body and posts it as the
// authenticated user.
func (s *Session) postMessage() error {
	subject, err := s.Term.Ask("Subject: ")
	if err != nil {
		return ErrDisconnect
	}

	s.Term.SendLn("Enter message. End with a single '.' on its own line.")
	var lines []string
	for {
		line, err := s.Term.GetLine()
		if err != nil {
			return ErrDisconnect
		}
		if line == "." {
			break
		}
		lines = append(lines, line)
	}

	if _, err := s.svc.Messages.Post(subject, strings.Join(lines, "\n"), s.username); err != nil {
		s.fail(err)
		return nil
	}
	s.Term.SendLn("Posted.")
	return nil
}

// bulletins renders the bulletin index with a combined prompt. Any outcome
// returns to the main menu; there is no retry loop here.
func (s *Session) bulletins() (state, error) {
	bulls, err := s.svc.Bulletins.List()
	if err != nil {
		s.fail(err)
		return stateMenu, nil
	}

	s.Term.SendLn("")
	s.Term.SendLn(terminal.FgMagenta + "Bulletins" + terminal.Reset)
	for i, b := range bulls {
		s.Term.SendLn(fmt.Sprintf("[%d] %s", i+1, b.Title))
	}

	sel, err := s.Term.Ask("Select number to read or B to go back: ")
	if err != nil {
		return stateTerminated, ErrDisconnect
	}
	if strings.EqualFold(sel, "b") || strings.EqualFold(sel, "back") {
		return stateMenu, nil
	}

	pos, convErr := strconv.Atoi(sel)
	if convErr != nil {
		s.Term.SendLn("Invalid selection.")
		return stateMenu, nil
	}

	b, err := s.svc.Bulletins.Read(pos)
	switch {
	case errors.Is(err, store.ErrOutOfRange):
		s.Term.SendLn("Invalid selection.")
	case err != nil:
		s.fail(err)
	default:
		s.Term.SendLn("")
		s.Term.SendLn(b.Title)
		s.Term.SendLn(strings.Repeat("-", len(b.Title)))
		for _, line := range terminal.Wrap(b.Body, bodyWidth) {
			s.Term.SendLn(line)
		}
		s.Term.SendLn("")
	}
	return stateMenu, nil
}

// whosOnline renders the sorted online list and returns straight to the menu.
func (s *Session) whosOnline() (state, error) {
	names := s.svc.Online.List()
	if len(names) == 0 {
		s.Term.SendLn("No one online.")
	} else {
		s.Term.SendLn("Online: " + strings.Join(names, ", "))
	}
	return stateMenu, nil
}

// shortTime renders a timestamp as date-time without sub-second or zone
// suffix, the first 19 characters of its RFC 3339 form.
func shortTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
