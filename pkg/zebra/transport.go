// Package zebra delivers rendered label documents to network label printers
// over a raw TCP socket.
package zebra

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds both connecting to the printer and writing the
// document.
const DefaultTimeout = 10 * time.Second

// Failure classifies why a send didn't go through.
type Failure string

const (
	FailureNone    Failure = ""
	FailureTimeout Failure = "timeout"
	FailureRefused Failure = "refused"
	FailureNetwork Failure = "network"
)

// Address is where a printer listens.
type Address struct {
	Host string
	Port int
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Result is the outcome of a single send attempt.
type Result struct {
	Success bool
	Message string
	Failure Failure
}

// Transport sends one copy of a document to a printer. Implementations must
// not retry: the caller owns the copy and retry policy.
type Transport interface {
	Send(ctx context.Context, document []byte, addr Address) Result
}

// TCPTransport opens a fresh connection for every send, so a failed copy
// never leaves a half-written job on a shared socket.
type TCPTransport struct {
	timeout time.Duration
}

func NewTCPTransport(timeout time.Duration) *TCPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPTransport{timeout: timeout}
}

func (t *TCPTransport) Send(ctx context.Context, document []byte, addr Address) Result {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		return classify(err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			conn.Close()
			return classify(err)
		}
	}

	if _, err := conn.Write(document); err != nil {
		conn.Close()
		return classify(err)
	}

	if err := conn.Close(); err != nil {
		return classify(err)
	}

	return Result{Success: true, Message: fmt.Sprintf("Envoyé à %s", addr)}
}

func classify(err error) Result {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return Result{Message: "Timeout connexion", Failure: FailureTimeout}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return Result{Message: "Connexion refusée", Failure: FailureRefused}
	}
	return Result{Message: err.Error(), Failure: FailureNetwork}
}
