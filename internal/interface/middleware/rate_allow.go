package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limit for loopback and private-range clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowPaths bypasses the limit for the given route paths, such as health checks.
func AllowPaths(paths ...string) AllowFunc {
	return func(c *gin.Context) bool {
		p := normalizePath(c)
		for _, allowed := range paths {
			if strings.EqualFold(p, allowed) {
				return true
			}
		}
		return false
	}
}

// AnyAllow combines allow funcs; the first that allows wins.
func AnyAllow(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
