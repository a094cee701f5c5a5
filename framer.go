package main

import (
	"bytes"
	"fmt"
	"net"
)

// maxInBuf bounds per-connection input buffer growth so a peer that never
// sends CRLF cannot exhaust memory. spec.md §5 and §9 leave this as an open
// question ("whether per-connection in_buf should be capped and at what
// size"); SPEC_FULL.md §10(c) resolves it: cap at 8192 bytes, well beyond
// any legal 512-byte line, and treat overflow as a framing error.
const maxInBuf = 8192

// readChunkSize is the minimum read size spec.md §4.1 requires ("read up to
// a fixed chunk size (>= 1024 bytes)").
const readChunkSize = 4096

// frameReader assembles CRLF-delimited frames from a connection's byte
// stream. It is the Go-goroutine equivalent of spec.md §4.1's in_buf: the
// accumulation and CRLF-slicing behavior is identical, just driven by a
// blocking read loop in its own goroutine instead of a shared readiness
// loop's read-ready callback.
type frameReader struct {
	conn  net.Conn
	inBuf []byte
}

func newFrameReader(conn net.Conn) *frameReader {
	return &frameReader{conn: conn}
}

// next blocks until a complete CRLF-terminated frame is available, the
// connection hits EOF, or an error (including input-buffer overflow)
// occurs. On EOF with a non-empty partial frame still buffered, the
// partial frame is discarded (spec.md §8: "EOF mid-frame discards the
// partial in_buf") and io.EOF is returned.
func (f *frameReader) next() ([]byte, error) {
	for {
		if idx := bytes.Index(f.inBuf, []byte("\r\n")); idx != -1 {
			frame := f.inBuf[:idx+2]
			f.inBuf = f.inBuf[idx+2:]
			out := make([]byte, len(frame))
			copy(out, frame)
			return out, nil
		}

		if len(f.inBuf) >= maxInBuf {
			return nil, fmt.Errorf("input buffer exceeded %d bytes without a terminator", maxInBuf)
		}

		chunk := make([]byte, readChunkSize)
		n, err := f.conn.Read(chunk)
		if n > 0 {
			f.inBuf = append(f.inBuf, chunk[:n]...)
		}
		if err != nil {
			f.inBuf = nil
			return nil, err
		}
		if n == 0 {
			f.inBuf = nil
			return nil, fmt.Errorf("empty read")
		}
	}
}
