package emails

import (
	"errors"
	"fmt"
	"strings"
)

const (
	subjectMarker = "SUBJECT:"
	bodyMarker    = "EMAIL:"
)

var (
	// ErrMissingSubject means no non-empty SUBJECT: line precedes the body.
	ErrMissingSubject = errors.New("missing subject")
	// ErrMissingBody means there is no EMAIL: line or nothing follows it.
	ErrMissingBody = errors.New("missing body")
)

// Draft is a subject and body pair ready to send.
type Draft struct {
	Subject string
	Body    string
	// FromTemplate is set when the draft came from the fallback letter.
	FromTemplate bool
}

// ParseError wraps ErrMissingSubject or ErrMissingBody with the offending input size.
type ParseError struct {
	Err   error
	Lines int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse draft (%d lines): %v", e.Lines, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDraft reads the two-field model format:
//
//	SUBJECT: <subject>
//
//	EMAIL:
//	<body lines>
//
// The first SUBJECT: line before the first EMAIL: line sets the subject. Everything
// after the first EMAIL: line is the body, trimmed. A marker must start its line.
func ParseDraft(text string) (Draft, error) {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n"), "\n")

	var subject, body string
	subjectSeen := false
	for i, line := range lines {
		if !subjectSeen && strings.HasPrefix(line, subjectMarker) {
			subject = strings.TrimSpace(strings.TrimPrefix(line, subjectMarker))
			subjectSeen = true
			continue
		}
		if strings.HasPrefix(line, bodyMarker) {
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			break
		}
	}

	if subject == "" {
		return Draft{}, &ParseError{Err: ErrMissingSubject, Lines: len(lines)}
	}
	if body == "" {
		return Draft{}, &ParseError{Err: ErrMissingBody, Lines: len(lines)}
	}
	return Draft{Subject: subject, Body: body}, nil
}
