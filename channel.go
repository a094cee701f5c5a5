package main

// Channel is a named broadcast group. Grounded on channel.go's struct shape
// from the teacher's early revision, with register/unregister/broadcast
// pulled out onto the type itself as spec.md §4.5 calls for (the teacher
// instead inlines membership mutation directly in Server/Client methods
// operating on Channel.Members).
type Channel struct {
	// name preserves the case the channel was first created with. Lookups
	// elsewhere are by the canonicalized (lowercased) form held in
	// Server.channels.
	name string

	topic string

	// members maps peer address to that member's nickname and a callback
	// that appends an already-encoded line to their output. This is the
	// "capability object" DESIGN.md's Channel entry describes: a channel
	// never holds a strong reference back into a Client, only a send
	// closure, so a member removing itself fully breaks the link.
	members map[string]*channelMember
}

type channelMember struct {
	nick string
	send func(line string)
}

func newChannel(name string) *Channel {
	return &Channel{
		name:    name,
		members: make(map[string]*channelMember),
	}
}

// register adds peer to the channel's membership. ok is false if peer was
// already a member (spec.md §4.4: a second JOIN to a channel already
// joined is a no-op). Channels have no member limit.
func (ch *Channel) register(peer, nick string, send func(line string)) (ok bool) {
	if _, exists := ch.members[peer]; exists {
		return false
	}
	ch.members[peer] = &channelMember{nick: nick, send: send}
	return true
}

// unregister removes peer from the channel. It is a no-op if peer is not a
// member.
func (ch *Channel) unregister(peer string) {
	delete(ch.members, peer)
}

// broadcastExcept delivers line to every member except origin.
func (ch *Channel) broadcastExcept(origin, line string) {
	for peer, m := range ch.members {
		if peer == origin {
			continue
		}
		m.send(line)
	}
}

// broadcastAll delivers line to every member, including origin. Used where
// spec.md calls for a self-echo, e.g. a joining client's own JOIN line.
func (ch *Channel) broadcastAll(line string) {
	for _, m := range ch.members {
		m.send(line)
	}
}

func (ch *Channel) isMember(peer string) bool {
	_, exists := ch.members[peer]
	return exists
}

func (ch *Channel) isEmpty() bool {
	return len(ch.members) == 0
}

// nicks returns the current member nicknames, in no particular order.
func (ch *Channel) nicks() []string {
	out := make([]string, 0, len(ch.members))
	for _, m := range ch.members {
		out = append(out, m.nick)
	}
	return out
}
