package main

import (
	"strings"
	"unicode/utf8"

	"github.com/horgh/irc"
)

// ParsedMessage is a frame turned into a command and its parameters. See
// spec.md §3 and §4.2.
type ParsedMessage struct {
	Command    string
	Parameters []string
}

// parseFrame turns one CRLF-terminated frame into a ParsedMessage, or
// reports that the frame should be silently dropped.
//
// irc.ParseMessage (vendored from the teacher) already enforces CRLF
// framing, the 512 byte line cap, and basic prefix/command/param grammar.
// This function adds the checks spec.md §4.2 requires beyond that: UTF-8
// validity, rejection of a literal "::" inside any parameter, and the
// recognized-command allowlist.
func parseFrame(frame []byte) (ParsedMessage, bool) {
	if !utf8.Valid(frame) {
		return ParsedMessage{}, false
	}

	line := string(frame)

	// spec.md §4.2 step 2: left-trim spaces before parsing. irc.ParseMessage
	// otherwise treats a leading space as the start of an empty command and
	// rejects the line.
	if idx := strings.IndexFunc(line, func(r rune) bool { return r != ' ' }); idx > 0 {
		line = line[idx:]
	}

	msg, err := irc.ParseMessage(line)
	if err != nil && err != irc.ErrTruncated {
		return ParsedMessage{}, false
	}

	command := strings.ToUpper(msg.Command)
	if !recognizedCommands[command] {
		return ParsedMessage{}, false
	}

	for _, p := range msg.Params {
		if strings.Contains(p, "::") {
			return ParsedMessage{}, false
		}
		if strings.ContainsAny(p, "\x00\r\n") {
			return ParsedMessage{}, false
		}
	}

	// irc.ParseMessage strips exactly one ':' at the "SPACE ':' trailing"
	// boundary (vendor/github.com/horgh/irc/irc_test.go: "#test ::" decodes
	// to the single param ":", "::one:two" decodes to ":one:two"), so a
	// literal "::" on the wire right at that boundary survives as only one
	// leading ':' in msg.Params and is invisible to the Contains check above.
	// A middle parameter can never start with ':' -- that's exactly what
	// marks the trailing clause instead -- so only the trailing (always the
	// last) parameter can exhibit this, and only when the original two
	// colons were adjacent.
	if n := len(msg.Params); n > 0 && strings.HasPrefix(msg.Params[n-1], ":") {
		return ParsedMessage{}, false
	}

	return ParsedMessage{Command: command, Parameters: msg.Params}, true
}

// recognizedCommands is the RFC-ish command set spec.md §4.2 step 7 names.
// Commands we don't implement handlers for still parse; the dispatch table
// in commands.go silently ignores anything it has no entry for.
var recognizedCommands = map[string]bool{
	"CAP":     true,
	"PASS":    true,
	"NICK":    true,
	"USER":    true,
	"PING":    true,
	"PONG":    true,
	"QUIT":    true,
	"JOIN":    true,
	"PART":    true,
	"TOPIC":   true,
	"NAMES":   true,
	"LIST":    true,
	"PRIVMSG": true,
	"NOTICE":  true,
	"WHO":     true,
	"WHOIS":   true,
	"KICK":    true,
	"MOTD":    true,
	"LUSERS":  true,
	"ERROR":   true,
}
