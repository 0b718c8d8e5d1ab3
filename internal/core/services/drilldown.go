package services

import (
	"fmt"
	"net/url"
	"strings"
)

// searchBasePath is the fixed path prefix drilldown links live under.
const searchBasePath = "/search/"

// EncodeSelection encodes a facet field/value selection as a single
// URL path segment using form-style percent encoding ("=" becomes
// "%3D", space becomes "+"). The exact bytes are a stable wire
// contract with the link consumers: RemoveSelection matches segments
// by the "field%3D" prefix.
func EncodeSelection(field, value string) string {
	return url.QueryEscape(field + "=" + value)
}

// RemoveSelection strips the filter segment for field out of
// currentPath and rebuilds the link under the /search/ prefix,
// preserving scheme, host and port and the order of all untouched
// segments. currentPath is "<scheme>://<host>/search/<queryToken>/<filterSegment>*"
// and is built by this process itself; malformed input is a
// programming-contract violation and panics.
func RemoveSelection(currentPath, field string) string {
	u, err := url.Parse(currentPath)
	if err != nil {
		panic(fmt.Sprintf("drilldown: malformed link %q: %v", currentPath, err))
	}

	segments := splitPath(u.EscapedPath())
	if u.Scheme == "" || u.Host == "" || len(segments) < 2 {
		panic(fmt.Sprintf("drilldown: link %q is not a search path", currentPath))
	}

	var b strings.Builder
	b.WriteString(segments[1])

	prefix := field + "%3D"
	for _, segment := range segments[2:] {
		if strings.HasPrefix(segment, prefix) {
			continue
		}
		b.WriteString("/")
		b.WriteString(segment)
	}

	return u.Scheme + "://" + u.Host + searchBasePath + b.String()
}

// splitPath splits a path on "/" dropping empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
