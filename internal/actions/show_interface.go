package actions

import (
	"fmt"
	"net"
	"strings"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/parser"
)

// ShowInterface lists the host's network interfaces. "brief" prints one
// line per interface; a name restricts output to that interface.
func ShowInterface(a *domain.Application) parser.Handler {
	deps := defaultDeps(a)
	return func(inv parser.Invocation) error {
		return showInterface(inv, deps)
	}
}

func showInterface(inv parser.Invocation, deps actionDependencies) error {
	ifaces, err := deps.Interfaces()
	if err != nil {
		return fmt.Errorf("list interfaces: %w", err)
	}

	if name, ok := inv.Values.Get("name"); ok {
		var found []net.Interface
		for _, iface := range ifaces {
			if iface.Name == name {
				found = append(found, iface)
			}
		}
		if len(found) == 0 {
			return fmt.Errorf("interface %q not found", name)
		}
		ifaces = found
	}

	if inv.Values.Has("brief") {
		_, _ = deps.Printf("%-16s %-6s %6s  %s\n", "Interface", "Status", "MTU", "Address")
		for _, iface := range ifaces {
			addr := "unassigned"
			if addrs := interfaceAddrs(iface, deps); len(addrs) > 0 {
				addr = addrs[0]
			}
			_, _ = deps.Printf("%-16s %-6s %6d  %s\n", iface.Name, status(iface, deps), iface.MTU, addr)
		}
		return nil
	}

	for i, iface := range ifaces {
		if i > 0 {
			_, _ = deps.Println()
		}
		_, _ = deps.Printf("%s is %s\n", deps.Styler.Command(iface.Name), status(iface, deps))
		if len(iface.HardwareAddr) > 0 {
			_, _ = deps.Printf("  Hardware address %s\n", iface.HardwareAddr)
		}
		_, _ = deps.Printf("  MTU %d, index %d\n", iface.MTU, iface.Index)
		_, _ = deps.Printf("  Flags %s\n", strings.ReplaceAll(iface.Flags.String(), "|", ", "))
		for _, addr := range interfaceAddrs(iface, deps) {
			_, _ = deps.Printf("  Internet address %s\n", addr)
		}
	}
	return nil
}

func status(iface net.Interface, deps actionDependencies) string {
	if iface.Flags&net.FlagUp != 0 {
		return deps.Styler.Success("up")
	}
	return deps.Styler.Error("down")
}

func interfaceAddrs(iface net.Interface, deps actionDependencies) []string {
	addrs, err := deps.Addrs(iface)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}
