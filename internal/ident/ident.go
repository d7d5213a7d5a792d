// Package ident extracts entity identifiers embedded in free-text messages.
package ident

import "regexp"

const (
	// SignPrefix starts every sign identifier.
	SignPrefix = "urn:here::here:signs:"
	// TopologyPrefix starts every topology identifier.
	TopologyPrefix = "urn:here::here:Topology:"
)

var (
	signRegex     = regexp.MustCompile(regexp.QuoteMeta(SignPrefix) + `\d+`)
	topologyRegex = regexp.MustCompile(regexp.QuoteMeta(TopologyPrefix) + `\S+`)
)

// Kind selects the identifier grammar.
type Kind int

const (
	// Sign identifiers end with a numeric part.
	Sign Kind = iota
	// Topology identifiers run until the next whitespace.
	Topology
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case Sign:
		return "sign"
	case Topology:
		return "topology"
	default:
		return "unknown"
	}
}

// Extract returns the first identifier of the given kind found in message.
// The boolean is false when the message carries none.
func Extract(kind Kind, message string) (string, bool) {
	var re *regexp.Regexp
	switch kind {
	case Sign:
		re = signRegex
	case Topology:
		re = topologyRegex
	default:
		return "", false
	}

	id := re.FindString(message)
	return id, id != ""
}

// SignID returns the first sign identifier in message.
func SignID(message string) (string, bool) {
	return Extract(Sign, message)
}

// TopologyID returns the first topology identifier in message.
func TopologyID(message string) (string, bool) {
	return Extract(Topology, message)
}
