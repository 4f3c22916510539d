package pattern

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// internalHostPatterns cover names that resolve inside a private
// network without being IP literals.
var internalHostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^localhost$`),
	regexp.MustCompile(`(?i)\.(?:internal|local|lan|corp)$`),
	regexp.MustCompile(`(?i)^metadata\.google\.internal$`),
}

var rfc1918Blocks = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"0.0.0.0/32",
)

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, ipnet, err := net.ParseCIDR(b)
		if err != nil {
			panic(err)
		}
		out = append(out, ipnet)
	}
	return out
}

// IsInternalURL reports whether a literal URL points at an internal
// network location: loopback, RFC1918 ranges, link-local, 0.0.0.0 or
// an internal-looking hostname.
func IsInternalURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	return IsInternalHost(u.Hostname())
}

// IsInternalHost reports whether a bare hostname or IP literal is
// internal.
func IsInternalHost(host string) bool {
	if host == "" {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		for _, block := range rfc1918Blocks {
			if block.Contains(ip) {
				return true
			}
		}
		return ip.IsLoopback() || ip.IsUnspecified() || ip.IsPrivate()
	}
	for _, p := range internalHostPatterns {
		if p.MatchString(host) {
			return true
		}
	}
	return false
}

// IsLocalOnlyHost reports hosts where plain HTTP is acceptable:
// loopback and link-local addresses, and localhost.
func IsLocalOnlyHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
