package main

import (
	"strings"
	"testing"

	"github.com/horgh/irc"
)

// spec.md §8: every outbound line must round-trip through the parser
// (PARSE(FORMAT(x)) == x in the relevant fields) and stay under 512 bytes.
func TestNumericLineRoundTrips(t *testing.T) {
	line := numericLine("pyircd", "alice", errNicknameInUse, "bob", "Nickname is already in use")

	if len(line) > irc.MaxLineLength {
		t.Fatalf("line length = %d, exceeds %d", len(line), irc.MaxLineLength)
	}
	if !strings.HasSuffix(line, "\r\n") {
		t.Fatalf("line does not end in CRLF: %q", line)
	}

	parsed, err := irc.ParseMessage(line)
	if err != nil {
		t.Fatalf("line did not parse back: %s", err)
	}
	if parsed.Command != errNicknameInUse {
		t.Fatalf("command = %s, wanted %s", parsed.Command, errNicknameInUse)
	}
	if len(parsed.Params) != 3 || parsed.Params[0] != "alice" {
		t.Fatalf("params = %#v, wanted [alice bob ...]", parsed.Params)
	}
}

// spec.md §8 scenario 2: an unregistered client's numeric carries no
// identifying nick/"*" field at all.
func TestNumericLineOmitsNickWhenUnregistered(t *testing.T) {
	line := numericLine("pyircd", "", errNicknameInUse, "alice", "Nickname is already in use")

	if line != ":pyircd 432 alice :Nickname is already in use\r\n" {
		t.Fatalf("line = %q", line)
	}
}

func TestRelayedLineUsesBareNick(t *testing.T) {
	line := relayedLine("alice", "PRIVMSG", "#room", "hello there")

	parsed, err := irc.ParseMessage(line)
	if err != nil {
		t.Fatalf("line did not parse: %s", err)
	}
	if parsed.Prefix != "alice" {
		t.Fatalf("prefix = %s, wanted bare nick alice", parsed.Prefix)
	}
}
