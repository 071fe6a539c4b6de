package common

import (
	"net/http"
	"strings"
	"time"
)

// GetIPAddr returns the client address, preferring the first hop listed in
// X-Forwarded-For when the request came through a proxy.
func GetIPAddr(r *http.Request) string {
	headerIP := r.Header.Get("X-Forwarded-For")
	if headerIP == "" {
		return r.RemoteAddr
	}
	if i := strings.IndexByte(headerIP, ','); i >= 0 {
		headerIP = headerIP[:i]
	}
	return strings.TrimSpace(headerIP)
}

// Millis converts t to milliseconds since the Unix epoch.
func Millis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
