package middleware

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseTrustedProxies reads IPs and CIDRs; a bare IP trusts that host only.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

// RealIP stores the client address under "real_ip" for rate-limit keys and
// allow rules. Forwarding headers count only when the TCP peer is one of
// trusted; any other peer is taken as the client itself.
func RealIP(trusted []netip.Prefix) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", clientAddr(c, trusted))
		c.Next()
	}
}

func clientAddr(c *gin.Context, trusted []netip.Prefix) string {
	peer, err := netip.ParseAddr(c.RemoteIP())
	if err != nil {
		return c.RemoteIP()
	}
	peer = peer.Unmap()
	if !isTrusted(peer, trusted) {
		return peer.String()
	}
	if a, ok := headerAddr(c.GetHeader("CF-Connecting-IP")); ok {
		return a.String()
	}
	if a, ok := forwardedFor(c.GetHeader("X-Forwarded-For"), trusted); ok {
		return a.String()
	}
	if a, ok := headerAddr(c.GetHeader("X-Real-IP")); ok {
		return a.String()
	}
	return peer.String()
}

// forwardedFor walks the chain from the nearest hop and returns the first
// address that is not a trusted proxy. Entries further left were written
// by the client and are never reached past an untrusted hop.
func forwardedFor(v string, trusted []netip.Prefix) (netip.Addr, bool) {
	if v == "" {
		return netip.Addr{}, false
	}
	hops := strings.Split(v, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		a, ok := headerAddr(hops[i])
		if !ok {
			return netip.Addr{}, false
		}
		if !isTrusted(a, trusted) {
			return a, true
		}
	}
	return netip.Addr{}, false
}

func headerAddr(v string) (netip.Addr, bool) {
	a, err := netip.ParseAddr(strings.TrimSpace(v))
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

func isTrusted(a netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ipFromCtx returns the address RealIP stored, or the peer when RealIP did not run.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.RemoteIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc names the counter a request is charged to.
type KeyFunc func(c *gin.Context) string

// KeyByIP charges every route to one counter per client.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

// KeyByRoute charges the routes of one group, such as all exports, to one
// counter per client.
func KeyByRoute(group string) KeyFunc {
	return func(c *gin.Context) string { return "rl:" + group + ":ip:" + ipFromCtx(c) }
}
