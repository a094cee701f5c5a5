package main

import (
	"log"
	"net"
	"time"

	"github.com/pkg/errors"
)

const (
	// idleTimeBeforePing and idleTimeBeforeDead are grounded on ircd.go's
	// identically named constants (the teacher keeps both a short
	// production value commented out and a short value live for fast test
	// iteration; we take production-scale values here).
	idleTimeBeforePing = time.Minute
	idleTimeBeforeDead = 3 * time.Minute

	// alarmPeriod is the single periodic timer in the system (spec.md §5:
	// "the only timer is the readiness wait itself"), folded here into a
	// once-a-second wakeup of the central loop, grounded on ircd.go's
	// alarm().
	alarmPeriod = time.Second
)

// eventKind tags what woke the central loop up.
type eventKind int

const (
	eventNewClient eventKind = iota
	eventMessage
	eventDeadClient
	eventAlarm
)

type serverEvent struct {
	kind    eventKind
	client  *Client
	message ParsedMessage
}

// Server owns the Client Registry and Channel Registry (spec.md §3) and is
// the sole goroutine that ever mutates them, its clients, or any Channel --
// the single-mutator guarantee spec.md §5 requires, here expressed as "one
// designated goroutine" rather than "the thread running the poll loop".
// Grounded on ircd.go's Server struct and its start() select loop.
type Server struct {
	config *Config

	events chan serverEvent

	// clients is the Client Registry: peer address -> session.
	clients map[string]*Client

	// nicks is the Client Registry's derived nickname view: nick exactly as
	// given (no case folding) -> session, for uniqueness checks and
	// PRIVMSG-to-nick delivery.
	nicks map[string]*Client

	// channels is the Channel Registry: canonicalized name -> Channel.
	channels map[string]*Channel
}

func newServer(cfg *Config) *Server {
	return &Server{
		config:   cfg,
		events:   make(chan serverEvent, 256),
		clients:  make(map[string]*Client),
		nicks:    make(map[string]*Client),
		channels: make(map[string]*Channel),
	}
}

// Serve starts the central loop and accepts connections on ln until ln is
// closed, then returns. Grounded on ircd.go's start()/acceptConnections.
func (s *Server) Serve(ln net.Listener) error {
	go s.alarmLoop()
	go s.run()

	s.acceptLoop(ln)
	return nil
}

// ListenAndServe opens a TCP listener on the configured host/port and
// serves it. This is the pinned external listening endpoint of spec.md §6.
func (s *Server) ListenAndServe() error {
	addr := net.JoinHostPort(s.config.ListenHost, s.config.ListenPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "unable to listen on %s", addr)
	}
	log.Printf("%s listening on %s", s.config.ServerName, addr)
	return s.Serve(ln)
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("accept error: %s", err)
			return
		}

		c := newClient(conn, s)

		// Enqueue the registration event before starting the reader/writer
		// goroutines: s.events is the loop's only mailbox for this client, so
		// sending eventNewClient first guarantees it is the first event the
		// loop ever sees for c, before readLoop has had any chance to read a
		// frame and race it onto the same channel.
		s.events <- serverEvent{kind: eventNewClient, client: c}

		go c.readLoop()
		go c.writeLoop()
	}
}

func (s *Server) alarmLoop() {
	ticker := time.NewTicker(alarmPeriod)
	defer ticker.Stop()
	for range ticker.C {
		s.events <- serverEvent{kind: eventAlarm}
	}
}

// run is the central loop: the sole place Client Registry, Channel
// Registry, and Channel state are read or written.
func (s *Server) run() {
	for ev := range s.events {
		switch ev.kind {
		case eventNewClient:
			s.clients[ev.client.peer] = ev.client
			ev.client.lastActivity = time.Now()

		case eventMessage:
			c := ev.client
			if _, exists := s.clients[c.peer]; !exists {
				// Message from a client we've already cleaned up.
				continue
			}
			c.lastActivity = time.Now()
			s.handleMessage(c, ev.message)

		case eventDeadClient:
			c := ev.client
			if _, exists := s.clients[c.peer]; exists {
				s.disconnect(c, "Disconnected")
			}

		case eventAlarm:
			s.checkIdleClients()
		}
	}
}

// checkIdleClients PINGs idle registered clients and drops ones that have
// stayed idle past idleTimeBeforeDead. Grounded on ircd.go's
// checkAndPingClients; supplemented into this spec per SPEC_FULL.md §8 from
// original_source's idle-sweep behavior.
func (s *Server) checkIdleClients() {
	now := time.Now()
	for _, c := range s.clients {
		idle := now.Sub(c.lastActivity)

		if !c.registered {
			if idle > idleTimeBeforeDead {
				s.quit(c, "Idle too long")
			}
			continue
		}

		if idle < idleTimeBeforePing {
			continue
		}
		if idle > idleTimeBeforeDead {
			s.quit(c, "Ping timeout")
			continue
		}
		c.send(serverCommandLine(s.config.ServerName, "PING", s.config.ServerName))
	}
}
