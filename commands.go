package main

import (
	"fmt"
	"strings"
)

// serverVersion and serverCreated are static values reported in 002/003,
// matching the teacher's config-driven "version"/"created-date" fields but
// hardcoded here since this spec has no equivalent config keys (spec.md §6
// only pins SERVER_NAME and MOTD as external configuration).
const (
	serverVersion = "ircd-core-1.0"
	serverCreated = "2026-01-01"
)

// commandTable is the Client Session dispatch table spec.md §3 names
// ("dispatch table (command string -> handler)"). It is built once and
// shared by every registered Client; handlers are pure functions of
// (*Server, *Client, ParsedMessage) so there is no per-connection state to
// keep in the table itself.
var commandTable = map[string]func(*Server, *Client, ParsedMessage){
	"PING":    (*Server).cmdPing,
	"PONG":    (*Server).cmdPong,
	"QUIT":    (*Server).cmdQuit,
	"JOIN":    (*Server).cmdJoin,
	"PART":    (*Server).cmdPart,
	"PRIVMSG": (*Server).cmdPrivmsg,
	"LUSERS":  (*Server).cmdLusers,
	"MOTD":    (*Server).cmdMotd,
}

// handleMessage is the registration state machine plus post-registration
// dispatch of spec.md §4.3/§4.4. NICK and USER are handled outside the
// table because each behaves differently before and after registration.
func (s *Server) handleMessage(c *Client, msg ParsedMessage) {
	switch msg.Command {
	case "NICK":
		s.cmdNick(c, msg)
		return
	case "USER":
		s.cmdUser(c, msg)
		return
	}

	if !c.registered {
		// spec.md §4.3: "While UNREGISTERED, only NICK and USER advance
		// state; any other command is ignored."
		return
	}

	handler, ok := commandTable[msg.Command]
	if !ok {
		// spec.md §4.4: "Unknown command — silently ignored."
		return
	}
	handler(s, c, msg)
}

// sendNumeric sends a numeric reply, prepending the client's own nick as
// the first parameter -- unless the client has no nick yet, in which case
// the field is omitted entirely rather than filled with "*". See
// message.go's numericLine for why this departs from the teacher's
// always-prepend-or-"*" rule: spec.md §8 scenario 2 pins it.
func (s *Server) sendNumeric(c *Client, numeric string, params ...string) {
	c.send(numericLine(s.config.ServerName, c.nick, numeric, params...))
}

// sendNumericRaw sends a numeric reply with no identifying field at all,
// even if the client has a nick. spec.md §4.4 calls out exactly one case
// needing this: PRIVMSG-to-channel's 442 NOTONCHANNEL ("error variant
// without own nick prefix on the error line").
func (s *Server) sendNumericRaw(c *Client, numeric string, params ...string) {
	c.send(encodeLine(s.config.ServerName, numeric, params...))
}

func (s *Server) sendMotd(c *Client) {
	s.sendNumeric(c, rplMotdStart, fmt.Sprintf("- %s Message of the day -", s.config.ServerName))
	for _, line := range s.config.MOTD {
		s.sendNumeric(c, rplMotd, "- "+line)
	}
	s.sendNumeric(c, rplEndOfMotd, "End of /MOTD command.")
}

// maybeCompleteRegistration promotes a session from UNREGISTERED to
// REGISTERED the moment both nick and username are set, and sends the
// welcome burst spec.md §4.3 pins: 001, 002, 003, 004, then the MOTD
// sequence. LUSERS is not part of this burst in this spec (unlike the
// teacher, which also sends LUSERS here) -- it is only sent on an explicit
// LUSERS command (spec.md §4.4).
func (s *Server) maybeCompleteRegistration(c *Client) {
	if c.registered || c.nick == "" || c.username == "" {
		return
	}

	c.registered = true
	s.nicks[c.nick] = c

	s.sendNumeric(c, rplWelcome, fmt.Sprintf("Welcome to %s", s.config.ServerName))
	s.sendNumeric(c, rplYourHost,
		fmt.Sprintf("Your host is %s, running version %s", s.config.ServerName, serverVersion))
	s.sendNumeric(c, rplCreated, fmt.Sprintf("This server was created %s", serverCreated))
	s.sendNumeric(c, rplMyInfo, s.config.ServerName, serverVersion, "i", "t")

	s.sendMotd(c)
}

// cmdNick implements spec.md §4.3's NICK rules.
func (s *Server) cmdNick(c *Client, msg ParsedMessage) {
	if c.registered {
		// "NICK after registration is rejected (no change; the current
		// design does not support rename)." No numeric is pinned for this
		// case, so we reject silently.
		return
	}

	if len(msg.Parameters) == 0 || msg.Parameters[0] == "" {
		s.sendNumeric(c, errNoNicknameGiven, "No nickname given")
		return
	}

	nick := msg.Parameters[0]

	if _, exists := s.nicks[nick]; exists {
		s.sendNumeric(c, errNicknameInUse, nick, "Nickname is already in use")
		return
	}

	c.nick = nick
	s.maybeCompleteRegistration(c)
}

// cmdUser implements spec.md §4.3's USER rules.
func (s *Server) cmdUser(c *Client, msg ParsedMessage) {
	if c.registered {
		s.sendNumeric(c, errAlreadyRegistered, "USER", "You may not reregister")
		return
	}

	if len(msg.Parameters) < 4 {
		s.sendNumeric(c, errNeedMoreParams, "USER", "Not enough parameters")
		return
	}

	username := msg.Parameters[0]
	realname := msg.Parameters[3]

	if username == "" || realname == "" {
		s.sendNumeric(c, errNeedMoreParams, "USER", "Not enough parameters")
		return
	}

	c.username = username
	c.realname = realname
	s.maybeCompleteRegistration(c)
}

// cmdPing implements spec.md §4.4's PING rule: reply with no nick prefix
// in the middle field.
func (s *Server) cmdPing(c *Client, msg ParsedMessage) {
	if len(msg.Parameters) == 0 || msg.Parameters[0] == "" {
		s.sendNumeric(c, errNeedMoreParams, "PING", "Not enough parameters")
		return
	}
	c.send(serverCommandLine(s.config.ServerName, "PONG", s.config.ServerName, msg.Parameters[0]))
}

// cmdPong accepts and ignores PONG. Grounded on original_source's pyircd
// client.py dispatch table, which carries an explicit no-op PONG entry
// rather than letting it fall through to "unknown command" -- see
// SPEC_FULL.md §8.
func (s *Server) cmdPong(c *Client, msg ParsedMessage) {}

// cmdQuit implements spec.md §4.4's QUIT rule.
func (s *Server) cmdQuit(c *Client, msg ParsedMessage) {
	reason := ""
	if len(msg.Parameters) > 0 {
		reason = msg.Parameters[0]
	}
	s.quit(c, reason)
}

// cmdJoin implements spec.md §4.4's JOIN rule.
func (s *Server) cmdJoin(c *Client, msg ParsedMessage) {
	if len(msg.Parameters) == 0 || msg.Parameters[0] == "" {
		s.sendNumeric(c, errNeedMoreParams, "JOIN", "Not enough parameters")
		return
	}

	for _, raw := range strings.Split(msg.Parameters[0], ",") {
		s.joinOne(c, raw)
	}
}

func (s *Server) joinOne(c *Client, raw string) {
	if !isValidChannelName(raw) {
		s.sendNumeric(c, errBadChanMask, raw, "Bad Channel Mask")
		return
	}

	canon := canonicalizeChannel(raw)
	if c.onChannel(canon) {
		// spec.md §8: "A second JOIN to a channel already joined is a
		// no-op (no duplicate membership, no extra JOIN echo)."
		return
	}

	ch, exists := s.channels[canon]
	if !exists {
		ch = newChannel(raw)
		s.channels[canon] = ch
	}

	ch.register(c.peer, c.nick, c.send)
	c.channels[canon] = ch

	// Ordering pinned by spec.md §4.4 and §5: JOIN to channel, JOIN to
	// self, TOPIC (if any), NAMREPLY, ENDOFNAMES. The joining member is
	// already registered above, so broadcasting to every member (including
	// origin) delivers both the channel broadcast and the self-echo in one
	// pass, in the same relative order other members see it in.
	ch.broadcastAll(relayedLine(c.nick, "JOIN", ch.name))

	if ch.topic != "" {
		s.sendNumeric(c, rplTopic, ch.name, ch.topic)
	}

	c.send(namReplyLine(s.config.ServerName, c.nick, ch.name, strings.Join(ch.nicks(), ",")))
	s.sendNumeric(c, rplEndOfNames, "End of /NAMES list")
}

// cmdPart implements spec.md §4.4's PART rule, including the pinned
// multi-word-reason parsing: everything after the last '#'-prefixed
// parameter is the reason, joined with spaces.
func (s *Server) cmdPart(c *Client, msg ParsedMessage) {
	lastChanIdx := -1
	for i, p := range msg.Parameters {
		if strings.HasPrefix(p, "#") {
			lastChanIdx = i
		}
	}
	if lastChanIdx == -1 {
		s.sendNumeric(c, errNeedMoreParams, "PART", "Not enough parameters")
		return
	}

	reason := strings.Join(msg.Parameters[lastChanIdx+1:], " ")

	for _, raw := range strings.Split(msg.Parameters[lastChanIdx], ",") {
		s.partOne(c, raw, reason)
	}
}

func (s *Server) partOne(c *Client, raw, reason string) {
	canon := canonicalizeChannel(raw)

	ch, exists := s.channels[canon]
	if !exists {
		s.sendNumeric(c, errNoSuchChannel, raw, "No such channel")
		return
	}

	if !ch.isMember(c.peer) {
		s.sendNumeric(c, errNotOnChannel, ch.name, "You're not on that channel")
		return
	}

	ch.broadcastAll(relayedLine(c.nick, "PART", ch.name, reason))

	ch.unregister(c.peer)
	delete(c.channels, canon)

	if ch.isEmpty() {
		delete(s.channels, canon)
	}
}

// cmdPrivmsg implements spec.md §4.4's PRIVMSG rule.
func (s *Server) cmdPrivmsg(c *Client, msg ParsedMessage) {
	if len(msg.Parameters) == 0 {
		s.sendNumeric(c, errNeedMoreParams, "PRIVMSG", "Not enough parameters")
		return
	}
	if len(msg.Parameters) < 2 {
		s.sendNumeric(c, errNeedMoreParams, "PRIVMSG", "Not enough parameters")
		return
	}

	text := msg.Parameters[len(msg.Parameters)-1]

	for _, target := range strings.Split(msg.Parameters[0], ",") {
		s.privmsgOne(c, target, text)
	}
}

func (s *Server) privmsgOne(c *Client, target, text string) {
	if strings.HasPrefix(target, "#") {
		canon := canonicalizeChannel(target)
		ch, exists := s.channels[canon]
		if !exists {
			s.sendNumeric(c, errNoSuchChannel, target, "No such channel")
			return
		}
		if !ch.isMember(c.peer) {
			s.sendNumericRaw(c, errNotOnChannel, ch.name, "You're not on that channel")
			return
		}

		ch.broadcastExcept(c.peer, relayedLine(c.nick, "PRIVMSG", ch.name, text))
		return
	}

	recipient, exists := s.nicks[target]
	if !exists {
		s.sendNumeric(c, errNoSuchNick, target, "No such nick/channel")
		return
	}

	recipient.send(relayedLine(c.nick, "PRIVMSG", recipient.nick, text))
}

// cmdLusers implements spec.md §4.4's LUSERS rule.
func (s *Server) cmdLusers(c *Client, msg ParsedMessage) {
	n := len(s.nicks)
	s.sendNumeric(c, rplLUserClient,
		fmt.Sprintf("There are %d users and 0 invisible on 0 servers", n))
	s.sendNumeric(c, rplLUserMe, fmt.Sprintf("I have %d clients and 0 servers", n))
}

// cmdMotd implements spec.md §4.4's MOTD rule.
func (s *Server) cmdMotd(c *Client, msg ParsedMessage) {
	if len(msg.Parameters) > 0 && msg.Parameters[0] != "" &&
		msg.Parameters[0] != s.config.ServerName {
		s.sendNumeric(c, errNoSuchServer, msg.Parameters[0], "No such server")
		return
	}
	s.sendMotd(c)
}

// quit implements spec.md §4.4's QUIT rule, and is reused for
// server-initiated idle/ping-timeout disconnects (see SPEC_FULL.md §8 and
// server.go's checkIdleClients), matching the teacher's ircd.go which
// reuses Client.quit for exactly the same two callers.
func (s *Server) quit(c *Client, reason string) {
	s.leaveAllChannels(c, "Disconnected")
	s.forgetClient(c)
	c.send(serverCommandLine(s.config.ServerName, "ERROR", fmt.Sprintf("QUIT: %s", reason)))
	c.close()
}

// disconnect handles the transport-level DISCONNECT event (EOF/read
// error): spec.md §4.1 calls for leaving channels with no self-echo and no
// ERROR line, since the connection is already broken.
func (s *Server) disconnect(c *Client, reason string) {
	s.leaveAllChannels(c, reason)
	s.forgetClient(c)
	c.close()
}

func (s *Server) forgetClient(c *Client) {
	if c.nick != "" {
		delete(s.nicks, c.nick)
	}
	delete(s.clients, c.peer)
}

func (s *Server) leaveAllChannels(c *Client, reason string) {
	for name, ch := range c.channels {
		ch.broadcastExcept(c.peer, relayedLine(c.nick, "PART", ch.name, reason))
		ch.unregister(c.peer)
		delete(c.channels, name)
		if ch.isEmpty() {
			delete(s.channels, name)
		}
	}
}
