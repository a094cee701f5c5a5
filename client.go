package main

import (
	"fmt"
	"log"
	"net"
	"time"
)

// Client is one connection's ClientSession (spec.md §3). Grounded on
// ircd.go's Client struct, with the registration fields and per-channel
// membership spec.md's data model names.
type Client struct {
	conn net.Conn

	// peer identifies this connection (its remote address) and is the key
	// used in Server.clients and in every Channel's membership map.
	peer string

	server *Server

	writeChan chan string

	registered bool
	nick       string
	username   string
	realname   string

	// channels maps canonicalized channel name to the Channel this client
	// has joined, so QUIT/PART can walk its memberships directly.
	channels map[string]*Channel

	lastActivity time.Time
}

func newClient(conn net.Conn, s *Server) *Client {
	return &Client{
		conn:      conn,
		peer:      conn.RemoteAddr().String(),
		server:    s,
		writeChan: make(chan string, 256),
		channels:  make(map[string]*Channel),
	}
}

// send queues an already-encoded line for delivery. This is spec.md
// §4.1's out_buf, expressed as a channel: a single designated writer
// goroutine (writeLoop) drains it in FIFO order, so "bytes placed in
// out_buf are delivered in order" holds without explicit slice trimming.
func (c *Client) send(line string) {
	if line == "" {
		return
	}
	select {
	case c.writeChan <- line:
	default:
		// Writer is catastrophically behind (slow/unresponsive peer). Drop
		// the line rather than block the central loop -- spec.md does not
		// specify backpressure behavior, and blocking the single mutator
		// goroutine on one slow client would stall every other connection.
		log.Printf("client %s: output buffer full, dropping line", c.peer)
	}
}

// readLoop reads frames from the connection and forwards each as an event
// to the central loop. Grounded on ircd.go's Client.readLoop, generalized
// to use frameReader's explicit in_buf accumulation (spec.md §4.1) instead
// of bufio.ReadString.
func (c *Client) readLoop() {
	fr := newFrameReader(c.conn)

	for {
		frame, err := fr.next()
		if err != nil {
			c.server.events <- serverEvent{kind: eventDeadClient, client: c}
			return
		}

		parsed, ok := parseFrame(frame)
		if !ok {
			// Framing/validation error: drop the frame silently, keep reading
			// (spec.md §7: framing errors never reset the connection).
			continue
		}

		c.server.events <- serverEvent{kind: eventMessage, client: c, message: parsed}
	}
}

// writeLoop drains writeChan in order and writes each line to the
// connection. Grounded on ircd.go's Client.writeLoop: ranging over the
// channel until it is closed, then closing the TCP connection, guarantees
// every already-queued line is flushed before the socket goes away -- this
// is spec.md §4.1's "Shutdown trigger" (drain remaining output, then
// unregister and close).
func (c *Client) writeLoop() {
	for line := range c.writeChan {
		if _, err := c.conn.Write([]byte(line)); err != nil {
			log.Printf("client %s: write error: %s", c.peer, err)
			break
		}
	}

	if err := c.conn.Close(); err != nil {
		log.Printf("client %s: error closing connection: %s", c.peer, err)
	}
}

// close tells the writer goroutine there is nothing more to send. Only the
// central loop goroutine may call this, and only after it has stopped
// sending to the client (removed it from every registry) -- otherwise a
// later send on a closed channel would panic.
func (c *Client) close() {
	close(c.writeChan)
}

func (c *Client) String() string {
	return fmt.Sprintf("%s (%s)", c.peer, c.nick)
}

func (c *Client) onChannel(name string) bool {
	_, ok := c.channels[name]
	return ok
}
