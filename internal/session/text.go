package session

import "github.com/michaelneale/retrobbs/internal/terminal"

// Fixed protocol text. The board targets plain terminal clients, so these
// carry raw ANSI color with CR+LF line endings.

var welcomeBanner = terminal.ClearScreen() + "\r\n" +
	terminal.FgCyan +
	"========================================\r\n" +
	"            Goose Retro BBS\r\n" +
	"========================================" +
	terminal.Reset + "\r\n"

var mainMenuText = "\r\n" +
	terminal.FgYellow + "Main Menu" + terminal.Reset + "\r\n" +
	"[1] Message Board\r\n" +
	"[2] Bulletins\r\n" +
	"[3] Who's Online\r\n" +
	"[4] Logoff\r\n" +
	"Select: "

var boardMenuText = "\r\n" +
	terminal.FgYellow + "Message Board" + terminal.Reset + "\r\n" +
	"[L] List messages\r\n" +
	"[R] Read message\r\n" +
	"[P] Post message\r\n" +
	"[B] Back\r\n" +
	"Select: "
