package main

// Numeric reply codes this daemon sends. Named the way
// vendor/github.com/horgh/irc/irc.go names the two numerics it knows about
// (ReplyWelcome, ReplyYoureOper); this file extends that same naming
// convention to the full set spec.md ties a line's meaning to.
const (
	rplWelcome     = "001"
	rplYourHost    = "002"
	rplCreated     = "003"
	rplMyInfo      = "004"
	rplLUserClient = "251"
	rplLUserMe     = "255"
	// rplTopic is 332 (RPL_TOPIC) per spec.md §4.4/§6; 331 is RPL_NOTOPIC,
	// which this server never sends -- a channel with no topic set simply
	// omits 332 on JOIN rather than sending an explicit "no topic" reply.
	rplTopic      = "332"
	rplNamReply   = "353"
	rplEndOfNames = "366"
	rplMotd       = "372"
	rplMotdStart  = "375"
	rplEndOfMotd  = "376"

	errNoSuchNick      = "401"
	errNoSuchServer    = "402"
	errNoSuchChannel   = "403"
	errNoNicknameGiven = "431"
	// errNicknameInUse is "432", not the RFC-standard "433". The worked
	// scenario in spec.md §8 and the numeric catalog in spec.md §6 both pin
	// this as 432; §4.3's prose numeral is a documentation slip carried over
	// from the teacher, which made the identical substitution. Preserved
	// here because the scenario is the pinned, test-checked behavior.
	errNicknameInUse = "432"
	errNotOnChannel  = "442"
	// errUserOnChannel ("443", ERR_USERONCHANNEL) is part of the numeric
	// catalog spec.md §6 lists as implemented, but no operation in this
	// subset of commands (no INVITE) ever triggers it. Kept named for
	// completeness of the catalog.
	errUserOnChannel     = "443"
	errNeedMoreParams    = "461"
	errAlreadyRegistered = "462"
	errBadChanMask       = "476"
)
