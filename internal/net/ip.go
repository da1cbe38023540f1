package net

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
)

// ShareScheme prefixes the links a host hands out to viewers.
const ShareScheme = "paintboard://"

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; fall back to the local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func getLocalIPFallback() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	slog.Warn("[NET] no suitable local IP found, share link falls back to loopback")
	return "127.0.0.1", nil
}

// ShareLink builds the link a viewer passes on its command line.
func ShareLink(host string, port int) string {
	return ShareScheme + net.JoinHostPort(host, strconv.Itoa(port))
}

// IsShareLink reports whether arg looks like a share link.
func IsShareLink(arg string) bool {
	return strings.HasPrefix(arg, ShareScheme)
}

// ParseShareLink extracts host:port from a share link.
func ParseShareLink(link string) (string, error) {
	if !IsShareLink(link) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, ShareScheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("share link %q: %w", link, err)
	}
	if host == "" {
		return "", fmt.Errorf("share link %q: missing host", link)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("share link %q: bad port: %w", link, err)
	}
	return addr, nil
}
