// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
)

// TelnetClient is a simple Telnet test client for integration testing.
type TelnetClient struct {
	conn net.Conn
	buf  strings.Builder
	t    testing.TB
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t testing.TB, addr string) *TelnetClient {
	t.Helper()
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v [%s]", addr, err, time.Since(start))
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})

	t.Logf("telnet client connected to %s [%s]", addr, time.Since(start))
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil reads until substr appears in the output with ANSI styling and
// Telnet negotiation removed, or the timeout expires. Output after the match
// is kept for the next call.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the plain-text output up to and including substr, or fails on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	tmp := make([]byte, 1024)
	for {
		text := plain(c.buf.String())
		if idx := strings.Index(text, substr); idx >= 0 {
			end := idx + len(substr)
			c.buf.Reset()
			c.buf.WriteString(text[end:])
			return text[:end]
		}
		n, err := c.conn.Read(tmp)
		if n > 0 {
			c.buf.Write(tmp[:n])
			continue
		}
		if err != nil {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, text, err)
		}
	}
}

// Send writes a line of text to the server, appending \r\n.
//
// Precondition: text should not contain trailing newline characters.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Command sends text and returns the output up to the next prompt.
func (c *TelnetClient) Command(text string) string {
	c.t.Helper()
	c.Send(text)
	return c.ReadUntil("]> ", 5*time.Second)
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}

// plain strips ANSI styling, Telnet commands and carriage returns.
func plain(s string) string {
	s = telnet.StripANSI(s)
	s = strings.ReplaceAll(s, string([]byte{telnet.IAC, telnet.WILL, telnet.OptSuppressGoAhead}), "")
	return strings.ReplaceAll(s, "\r", "")
}
