package actions

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/parser"
)

const (
	defaultPingCount = 4
	defaultPingPort  = "80"
	pingTimeout      = 2 * time.Second
	pingInterval     = time.Second
)

// Ping probes a host by opening TCP connections to it, one per count,
// and reports the connect time of each.
func Ping(a *domain.Application) parser.Handler {
	deps := defaultDeps(a)
	return func(inv parser.Invocation) error {
		return ping(context.Background(), inv, deps)
	}
}

func ping(ctx context.Context, inv parser.Invocation, deps actionDependencies) error {
	host, _ := inv.Values.Get("host")

	count := defaultPingCount
	if raw, ok := inv.Values.Get("--count"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid count %q: expected a positive integer", raw)
		}
		count = n
	}

	port := defaultPingPort
	if raw, ok := inv.Values.Get("--port"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("invalid port %q", raw)
		}
		port = raw
	}

	lookupCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	addrs, err := deps.LookupHost(lookupCtx, host)
	cancel()
	if err != nil {
		return fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(addrs) == 0 {
		return fmt.Errorf("resolve %s: no addresses", host)
	}

	if inv.Values.Has("--verbose") {
		for _, a := range addrs {
			_, _ = deps.Printf("%s\n", deps.Styler.Muted(host+" has address "+a))
		}
	}

	target := net.JoinHostPort(addrs[0], port)
	_, _ = deps.Printf("Probing %s (%s) with %d TCP connects:\n", host, target, count)

	replies := 0
	for i := range count {
		if i > 0 {
			deps.Sleep(pingInterval)
		}
		rtt, err := deps.Probe(ctx, target)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			_, _ = deps.Printf("  seq=%d %s\n", i+1, deps.Styler.Error("failed: "+err.Error()))
			continue
		}
		replies++
		_, _ = deps.Printf("  seq=%d reply from %s time=%s\n", i+1, target, rtt.Round(time.Millisecond))
	}

	summary := fmt.Sprintf("%d/%d replies", replies, count)
	if replies == count {
		summary = deps.Styler.Success(summary)
	} else {
		summary = deps.Styler.Warning(summary)
	}
	_, _ = deps.Printf("%s\n", summary)
	return nil
}

// tcpProbe measures how long a TCP connect to addr takes.
func tcpProbe(ctx context.Context, addr string) (time.Duration, error) {
	d := net.Dialer{Timeout: pingTimeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return 0, err
	}
	rtt := time.Since(start)
	_ = conn.Close()
	return rtt, nil
}
