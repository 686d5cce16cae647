// Package id generates the identifiers that correlate log lines from one run.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// SessionPrefix prefixes the id of one watch session.
	SessionPrefix = "watch"

	// sessionAlphabet avoids characters that need quoting in log output.
	sessionAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	sessionLength   = 12
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "watch-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Session returns a short lowercase id for one watch session, e.g.
// "watch-3k9x0c1m2a7q".
func Session() (string, error) {
	id, err := gonanoid.Generate(sessionAlphabet, sessionLength)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return SessionPrefix + "-" + id, nil
}

// MustSession is like Session but panics if generation fails.
func MustSession() string {
	id, err := Session()
	if err != nil {
		panic(fmt.Sprintf("failed to generate session ID: %v", err))
	}
	return id
}
