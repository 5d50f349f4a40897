// Package terminal provides line-oriented I/O over a raw connection for
// simple terminal/telnet/netcat clients. ANSI escape sequences are only
// emitted, never parsed or negotiated.
package terminal

import (
	"bufio"
	"io"
	"strings"
)

// Terminal wraps a raw connection with BBS-oriented read/write methods.
// Client input is newline-terminated; server output uses CR+LF.
type Terminal struct {
	rwc    io.ReadWriteCloser
	reader *bufio.Reader
}

// New creates a Terminal wrapping the given ReadWriteCloser.
func New(rwc io.ReadWriteCloser) *Terminal {
	return &Terminal{
		rwc:    rwc,
		reader: bufio.NewReader(rwc),
	}
}

// Close closes the underlying connection.
func (t *Terminal) Close() error {
	return t.rwc.Close()
}

// Send writes raw text to the terminal.
func (t *Terminal) Send(text string) error {
	_, err := io.WriteString(t.rwc, text)
	return err
}

// SendLn writes a line of text followed by CR+LF.
func (t *Terminal) SendLn(text string) error {
	return t.Send(text + "\r\n")
}

// Cls clears the screen and homes the cursor.
func (t *Terminal) Cls() error {
	return t.Send(ClearScreen())
}

// GetLine reads one newline-terminated line from the client and returns it
// with surrounding whitespace stripped. Any read error means the connection
// is gone.
func (t *Terminal) GetLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Ask writes a prompt and reads one line of input.
func (t *Terminal) Ask(prompt string) (string, error) {
	if err := t.Send(prompt); err != nil {
		return "", err
	}
	return t.GetLine()
}
