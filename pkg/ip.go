package pkg

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

var (
	localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1:\d{1,5}`)
)

func IPIsLocal(ipAddr string) bool {
	// used in local development ?
	if strings.HasPrefix(ipAddr, "127.0.0.1:") || strings.HasPrefix(ipAddr, "[::1]:") {
		return true
	}

	// user within docker container ?
	return localDockerIpRegex.MatchString(ipAddr)
}

// ReadUserIP returns the client address of the request. The X-Real-Ip and
// X-Forwarded-For headers are only honored when the request comes from one of
// the trusted proxies (IPs or CIDRs), otherwise any client could pick its own
// address. Local and docker bridge addresses are reported as "localhost".
func ReadUserIP(r *http.Request, trustedProxies []string) (string, error) {
	ipAddr := r.RemoteAddr
	if IsTrustedProxy(RemoteHost(r), trustedProxies) {
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-Ip")); realIP != "" {
			ipAddr = realIP
		} else if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			// client, proxy1, proxy2 ...
			client, _, _ := strings.Cut(forwarded, ",")
			ipAddr = strings.TrimSpace(client)
		}
	}

	if IPIsLocal(ipAddr) {
		return "localhost", nil
	}

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}

	if ip := net.ParseIP(ipAddr); ip == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	return ipAddr, nil
}

// RemoteHost is the host part of the request remote address.
func RemoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func IsTrustedProxy(host string, trustedProxies []string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, proxy := range trustedProxies {
		if strings.Contains(proxy, "/") {
			if _, ipNet, err := net.ParseCIDR(proxy); err == nil && ipNet.Contains(ip) {
				return true
			}
			continue
		}
		if proxyIP := net.ParseIP(proxy); proxyIP != nil && proxyIP.Equal(ip) {
			return true
		}
	}
	return false
}
