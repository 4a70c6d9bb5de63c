package actions

import (
	"context"
	"net"
	"time"

	"github.com/footprint-tools/commands/internal/app"
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui/style"
)

type actionDependencies struct {
	Printf     func(format string, a ...any) (n int, err error)
	Println    func(a ...any) (n int, err error)
	Styler     domain.Styler
	Version    func() string
	SessionID  string
	Interfaces func() ([]net.Interface, error)
	Addrs      func(iface net.Interface) ([]net.Addr, error)
	LookupHost func(ctx context.Context, host string) ([]string, error)
	Probe      func(ctx context.Context, addr string) (time.Duration, error)
	Sleep      func(time.Duration)
}

func defaultDeps(a *domain.Application) actionDependencies {
	styler := a.Styler
	if styler == nil {
		styler = style.NopStyler{}
	}
	return actionDependencies{
		Printf:     a.Output.Printf,
		Println:    a.Output.Println,
		Styler:     styler,
		Version:    func() string { return app.Version },
		SessionID:  a.SessionID,
		Interfaces: net.Interfaces,
		Addrs:      func(iface net.Interface) ([]net.Addr, error) { return iface.Addrs() },
		LookupHost: net.DefaultResolver.LookupHost,
		Probe:      tcpProbe,
		Sleep:      time.Sleep,
	}
}
