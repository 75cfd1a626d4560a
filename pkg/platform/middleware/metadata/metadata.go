// Package metadata records who is calling: client IP and User-Agent.
package metadata

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"auditarmor/pkg/requestcontext"
)

// Resolver decides the client IP. X-Forwarded-For and X-Real-IP are only
// believed when the direct peer is one of the trusted proxies; any other peer
// is identified by its connection address.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver parses trusted proxies given as CIDR ranges or single addresses.
func NewResolver(trustedProxies []string) (*Resolver, error) {
	r := &Resolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			r.trusted = append(r.trusted, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return r, nil
}

func (r *Resolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range r.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the peer address, or for a trusted peer the right-most
// X-Forwarded-For hop that is not itself a trusted proxy.
func (r *Resolver) ClientIP(req *http.Request) string {
	peer := remoteHost(req.RemoteAddr)
	if peer == "" {
		return "unknown"
	}
	if !r.isTrusted(peer) {
		return peer
	}

	if xff := req.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !r.isTrusted(hop) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(req.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

// Middleware stores the client IP and User-Agent with requestcontext. Apply it
// early in the chain.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := requestcontext.WithClientMetadata(req.Context(), r.ClientIP(req), req.UserAgent())
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// ClientMetadata trusts no proxy headers.
func ClientMetadata(next http.Handler) http.Handler {
	return (&Resolver{}).Middleware(next)
}

func remoteHost(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
