// routes_middleware.go - Schutz des lokalen Batch-Servers vor DNS-Rebinding
// Eine fremde Webseite kann ihren Namen auf 127.0.0.1 umbiegen und dann die
// Kalibrierungsbilder ueber den Browser abziehen. Der Host-Header verraet das:
// er traegt weiterhin den fremden Namen. Enthaelt: hostGuard, allowedHostsMiddleware()

package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// localSuffixes sind Namensendungen, die nie oeffentlich aufgeloest werden
var localSuffixes = []string{".localhost", ".local", ".internal"}

// hostGuard entscheidet, welche Host-Header ein Loopback-Server annimmt
type hostGuard struct {
	hostname  string
	localAddr func(netip.Addr) bool
}

func newHostGuard() hostGuard {
	hostname, _ := os.Hostname()
	return hostGuard{hostname: strings.ToLower(hostname), localAddr: interfaceAddr}
}

// check gibt errForbiddenHost zurueck, wenn host nicht auf diese Maschine zeigt
func (g hostGuard) check(hostport string) error {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		host = hostport
	}
	host = strings.ToLower(strings.Trim(host, "[]"))

	if ip, err := netip.ParseAddr(host); err == nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || g.localAddr(ip) {
			return nil
		}
		return fmt.Errorf("%w: %s", errForbiddenHost, host)
	}

	switch {
	case host == "", host == "localhost":
		return nil
	case g.hostname != "" && host == g.hostname:
		return nil
	}
	for _, suffix := range localSuffixes {
		if strings.HasSuffix(host, suffix) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", errForbiddenHost, host)
}

// interfaceAddr prueft ob ip einem Interface dieser Maschine gehoert
func interfaceAddr(ip netip.Addr) bool {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return false
	}
	for _, a := range addrs {
		if prefix, err := netip.ParsePrefix(a.String()); err == nil && prefix.Addr() == ip {
			return true
		}
	}
	return false
}

// allowedHostsMiddleware prueft den Host-Header nur, wenn der Server auf Loopback lauscht.
// Ein Server auf einer oeffentlichen Adresse wurde bewusst freigegeben.
func allowedHostsMiddleware(addr net.Addr) gin.HandlerFunc {
	loopback := false
	if addr != nil {
		if ap, err := netip.ParseAddrPort(addr.String()); err == nil {
			loopback = ap.Addr().IsLoopback()
		}
	}
	if !loopback {
		return func(c *gin.Context) { c.Next() }
	}

	guard := newHostGuard()
	return func(c *gin.Context) {
		if err := guard.check(c.Request.Host); err != nil {
			slog.Warn("rejected request", "host", c.Request.Host, "path", c.Request.URL.Path, "remote", c.ClientIP())
			writeError(c, err)
			return
		}
		c.Next()
	}
}
