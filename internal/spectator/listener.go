package spectator

import (
	"fmt"
	"net"
)

// newListener binds the feed address up front so a bad address fails at
// Start rather than inside the serving goroutine.
func newListener(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind spectator feed %s: %w", addr, err)
	}
	return ln, nil
}
