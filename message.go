package main

import (
	"fmt"

	"github.com/horgh/irc"
)

// encodeLine builds one outbound protocol line using the vendored codec, so
// the 512-byte cap and 15-parameter limit from spec.md §6 are enforced by
// the same library on every line this daemon sends, not reimplemented here.
// Truncation (irc.ErrTruncated) still yields a usable, if shortened, line,
// so it is not treated as a failure.
func encodeLine(prefix, command string, params ...string) string {
	msg := irc.Message{Prefix: prefix, Command: command, Params: params}
	line, err := msg.Encode()
	if err != nil && err != irc.ErrTruncated {
		// Only returned when even the prefix+command alone exceed the line
		// cap, when there are more than 15 parameters, or when a parameter
		// other than the last contains a space or starts with ':'. The line
		// is then dropped (empty string).
		return ""
	}
	return line
}

// numericLine builds a numeric reply line. The teacher (ircd.go's
// messageClient) always prepends the target's nick, substituting "*"
// before one is chosen. spec.md §8 scenario 2 pins a different, simpler
// rule instead: if the client has no nick yet, the identifying field is
// omitted entirely rather than filled with "*" -- so an unregistered
// client's numerics carry only the numeric's own parameters.
func numericLine(serverName, nick, numeric string, params ...string) string {
	if nick == "" {
		return encodeLine(serverName, numeric, params...)
	}
	allParams := append([]string{nick}, params...)
	return encodeLine(serverName, numeric, allParams...)
}

// relayedLine builds a line relayed from one client to others (JOIN, PART,
// PRIVMSG). Per spec.md §4.5 and the worked scenarios in §8, the source is
// the sender's bare nick -- no user@host -- unlike a real-world IRC daemon.
func relayedLine(fromNick, command string, params ...string) string {
	return encodeLine(fromNick, command, params...)
}

// serverCommandLine builds a non-numeric, server-originated line (PONG,
// ERROR) with no nick inserted into the parameters.
func serverCommandLine(serverName, command string, params ...string) string {
	return encodeLine(serverName, command, params...)
}

// namReplyLine builds a 353 RPL_NAMREPLY line with the comma-list of nicks
// forced to render as a trailing parameter (leading ':'), per the worked
// scenario in spec.md §8 ("...353 alice =#room :alice\r\n"). Grounded on
// the teacher's ircd.go, which forces the same colon explicitly
// (fmt.Sprintf(":%s", member.Nick)) rather than relying on automatic
// escaping -- built by hand here rather than routed through
// irc.Message.Encode because Encode's own "param starts with ':'" escape
// rule (vendor/github.com/horgh/irc/irc_test.go's "::one:two" case) would
// re-escape an already colon-prefixed param into a literal double colon,
// exactly the byte sequence this server's own parser rejects. A bare nick
// list has no space and does not start with ':', so Encode would otherwise
// never add the marker at all, which is the bug this replaces.
func namReplyLine(serverName, nick, channel, nickList string) string {
	return fmt.Sprintf(":%s %s %s =%s :%s\r\n", serverName, rplNamReply, nick, channel, nickList)
}
