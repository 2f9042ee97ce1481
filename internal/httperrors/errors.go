// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns query failures into troubleshooting hints for the terminal.
// The failure text itself is always shown verbatim; the hint only adds context.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	apperrors "cougardb/cli/internal/errors"

	"github.com/pterm/pterm"
)

// Category is the coarse class of a failed query.
type Category int

const (
	Unknown Category = iota
	Remote
	Timeout
	DNS
	ConnectionRefused
	TLS
	ServerError
	Malformed
	Config
)

// Classify inspects err. Errors that only survived as text (an ERROR
// outcome's message) are classified from the text.
func Classify(err error) Category {
	if err == nil {
		return Unknown
	}

	kind := apperrors.KindOf(err)
	if kind == "" {
		kind = kindFromText(err.Error())
	}

	switch kind {
	case apperrors.MalformedResponse:
		return Malformed
	case apperrors.Config:
		return Config
	case apperrors.HTTPStatus:
		if isServerError(err.Error()) {
			return ServerError
		}
		return Unknown
	case apperrors.Transport:
		switch {
		case isTimeoutError(err):
			return Timeout
		case isDNSError(err):
			return DNS
		case isConnectionRefusedError(err):
			return ConnectionRefused
		case isTLSError(err):
			return TLS
		}
		return Unknown
	default:
		// Anything else is the service's own message.
		return Remote
	}
}

// ClassifyMessage classifies an ERROR outcome message.
func ClassifyMessage(msg string) Category {
	return Classify(errors.New(msg))
}

func kindFromText(msg string) apperrors.Kind {
	for _, k := range []apperrors.Kind{apperrors.Transport, apperrors.HTTPStatus, apperrors.MalformedResponse, apperrors.Config} {
		if strings.HasPrefix(msg, string(k)+": ") {
			return k
		}
	}
	return ""
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such host")
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isTLSError checks if the error is an SSL/TLS error.
func isTLSError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the text carries a 5xx status.
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	for _, code := range []string{"http 500", "http 502", "http 503", "http 504"} {
		if strings.Contains(lower, code) {
			return true
		}
	}
	return false
}

// Hint returns troubleshooting lines for c, or nil when there is nothing to add.
func Hint(c Category, endpoint string) []string {
	host := ExtractHostFromURL(endpoint)
	switch c {
	case Timeout:
		return []string{
			fmt.Sprintf("%s took too long to respond. This could mean:", host),
			"  • The query is expensive; raise --timeout",
			"  • The service is under heavy load",
		}
	case DNS:
		return []string{
			fmt.Sprintf("Unable to look up %s. Please check:", host),
			"  • The endpoint URL (--url or COUGARDB_URL)",
			"  • DNS settings or VPN connection",
		}
	case ConnectionRefused:
		return []string{
			fmt.Sprintf("%s is not accepting connections. This could mean:", host),
			"  • The service is temporarily down",
			"  • Wrong server address or port",
		}
	case TLS:
		return []string{
			"Cannot establish a secure HTTPS connection. Check:",
			"  • The server certificate",
			"  • Network proxy settings and the system clock",
		}
	case ServerError:
		return []string{
			fmt.Sprintf("%s returned a server error. Please try again in a few minutes.", host),
		}
	case Malformed:
		return []string{
			fmt.Sprintf("%s answered with something that is not a Cougardb JSON-RPC response.", host),
			"  • Make sure the URL points at the query API, not a proxy page",
		}
	case Config:
		return []string{
			"Fix the setting with: cougar config set <key> <value>",
		}
	default:
		return nil
	}
}

// Present prints msg to w as an error followed by the hint for its category.
func Present(w io.Writer, msg, endpoint string) {
	pterm.Error.WithWriter(w).Println(msg)
	lines := Hint(ClassifyMessage(msg), endpoint)
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
