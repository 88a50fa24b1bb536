package scanner

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/serrors"
)

// MaxURLLength bounds the accepted input.
const MaxURLLength = 2048

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL turns user input into the canonical target of a scan.
//
// Input without an http:// or https:// prefix is treated as https. The result
// follows these rules:
//   - Lower-case the scheme and host, converting internationalized hosts to punycode
//   - Drop default ports (http:80, https:443), keep non-default ports
//   - Ensure path is present; empty path becomes "/"
//   - Remove the fragment
//
// Path and query are otherwise kept as typed. Inputs that do not parse as an
// absolute http(s) URL with a host fail with domain.ErrInvalidURL.
func NormalizeURL(raw string) (domain.Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Target{}, serrors.With(domain.ErrInvalidURL, "URL is required")
	}
	if len(raw) > MaxURLLength {
		return domain.Target{}, serrors.With(domain.ErrInvalidURL, "URL is longer than %d characters", MaxURLLength)
	}

	withScheme := raw
	if !schemePrefix.MatchString(raw) {
		withScheme = "https://" + raw
	}

	u, err := url.Parse(withScheme)
	if err != nil {
		return domain.Target{}, serrors.Wrap(domain.ErrInvalidURL, err, "invalid URL")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.Target{}, serrors.With(domain.ErrInvalidURL, "unsupported scheme %q", u.Scheme)
	}

	host, err := canonicalHost(u.Hostname())
	if err != nil {
		return domain.Target{}, err
	}

	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}

	switch {
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		u.Host = "[" + host + "]"
	default:
		u.Host = host
	}

	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	u.Fragment = ""
	u.RawFragment = ""

	canonical := u.String()

	return domain.Target{
		URL:               canonical,
		NormalizedURL:     canonical,
		Domain:            host,
		RegistrableDomain: registrableDomain(host),
	}, nil
}

func canonicalHost(host string) (string, error) {
	if host == "" {
		return "", serrors.With(domain.ErrInvalidURL, "URL has no host")
	}

	host = strings.ToLower(host)
	if isASCII(host) {
		return host, nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", serrors.Wrap(domain.ErrInvalidURL, err, "invalid host %q", host)
	}

	return ascii, nil
}

// registrableDomain returns the eTLD+1 of host, or host itself for IP
// addresses and names without a registrable part.
func registrableDomain(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}

	return etld1
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
