// Package wwwauth parses WWW-Authenticate challenge headers into
// structured challenges. Only the pieces the protocol layer needs are
// extracted: the scheme tag and its auth-params, notably realm.
package wwwauth

import "strings"

// Scheme is a challenge's auth-scheme tag, normalized to its canonical
// capitalization for the schemes this module recognizes.
type Scheme string

const (
	SchemeBasic  Scheme = "Basic"
	SchemeBearer Scheme = "Bearer"
	SchemeDigest Scheme = "Digest"
)

// Challenge is one parsed challenge from a WWW-Authenticate header.
type Challenge struct {
	Scheme Scheme
	// Realm is the realm auth-param, unquoted. Realm comparison by
	// callers is exact and case-sensitive.
	Realm string
	// Params holds all auth-params with lowercased names.
	Params map[string]string
}

// Parse extracts challenges from the given WWW-Authenticate header
// values, in order. Values that do not parse are skipped.
func Parse(values []string) []Challenge {
	var out []Challenge
	for _, v := range values {
		out = append(out, parseValue(v)...)
	}
	return out
}

// parseValue handles a single header value, which may carry several
// comma-separated challenges. A comma-separated segment that starts with
// a bare token (no '=') begins a new challenge; otherwise the segment is
// an auth-param of the current one.
func parseValue(value string) []Challenge {
	var out []Challenge
	var cur *Challenge
	for _, seg := range splitSegments(value) {
		scheme, rest, started := splitScheme(seg)
		if started {
			out = append(out, Challenge{Scheme: normalizeScheme(scheme), Params: map[string]string{}})
			cur = &out[len(out)-1]
			seg = rest
			if seg == "" {
				continue
			}
		}
		if cur == nil {
			continue
		}
		name, val, ok := splitParam(seg)
		if !ok {
			continue
		}
		cur.Params[name] = val
		if name == "realm" {
			cur.Realm = val
		}
	}
	return out
}

// splitSegments splits on commas that are not inside quoted strings.
func splitSegments(value string) []string {
	var segs []string
	var b strings.Builder
	inQuote := false
	escaped := false
	for _, r := range value {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\' && inQuote:
			b.WriteRune(r)
			escaped = true
		case r == '"':
			b.WriteRune(r)
			inQuote = !inQuote
		case r == ',' && !inQuote:
			segs = append(segs, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		segs = append(segs, s)
	}
	return segs
}

// splitScheme reports whether seg begins a new challenge and, if so,
// returns the scheme token and the remainder of the segment.
func splitScheme(seg string) (scheme, rest string, ok bool) {
	head, tail, found := strings.Cut(seg, " ")
	if !found {
		// A lone token with no params is a scheme (e.g. "Negotiate");
		// a key=value pair is a param of the previous challenge.
		if strings.Contains(seg, "=") {
			return "", seg, false
		}
		return seg, "", true
	}
	if strings.Contains(head, "=") {
		return "", seg, false
	}
	return head, strings.TrimSpace(tail), true
}

func splitParam(seg string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(seg, "=")
	if !ok {
		return "", "", false
	}
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = unquote(value[1 : len(value)-1])
	}
	return name, value, true
}

func unquote(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeScheme maps the case-insensitive auth-scheme token onto the
// canonical Scheme values where known.
func normalizeScheme(s string) Scheme {
	switch strings.ToLower(s) {
	case "basic":
		return SchemeBasic
	case "bearer":
		return SchemeBearer
	case "digest":
		return SchemeDigest
	default:
		return Scheme(s)
	}
}
