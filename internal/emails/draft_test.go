package emails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		subject string
		body    string
	}{
		{
			name:    "canonical",
			in:      "SUBJECT: Scale your DevOps team\n\nEMAIL:\nHi Acme,\n\nWe can help.\n",
			subject: "Scale your DevOps team",
			body:    "Hi Acme,\n\nWe can help.",
		},
		{
			name:    "preamble",
			in:      "Sure! Here is the email.\nSUBJECT:   Hello there  \nEMAIL:\n  Body line\n",
			subject: "Hello there",
			body:    "Body line",
		},
		{
			name:    "first subject wins",
			in:      "SUBJECT: First\nSUBJECT: Second\nEMAIL:\nBody",
			subject: "First",
			body:    "Body",
		},
		{
			name:    "text after email marker is ignored",
			in:      "SUBJECT: S\nEMAIL: ignored\nReal body",
			subject: "S",
			body:    "Real body",
		},
		{
			name:    "markers inside body are kept",
			in:      "SUBJECT: S\nEMAIL:\nline one\nEMAIL: quoted\nSUBJECT: quoted",
			subject: "S",
			body:    "line one\nEMAIL: quoted\nSUBJECT: quoted",
		},
		{
			name:    "crlf",
			in:      "SUBJECT: S\r\n\r\nEMAIL:\r\nBody\r\n",
			subject: "S",
			body:    "Body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDraft(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, d.Subject)
			assert.Equal(t, tt.body, d.Body)
			assert.False(t, d.FromTemplate)
		})
	}
}

func TestParseDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "empty", in: "", want: ErrMissingSubject},
		{name: "no subject", in: "EMAIL:\nBody", want: ErrMissingSubject},
		{name: "blank subject", in: "SUBJECT:   \nEMAIL:\nBody", want: ErrMissingSubject},
		{name: "subject after body marker", in: "EMAIL:\nBody\nSUBJECT: late", want: ErrMissingSubject},
		{name: "no body marker", in: "SUBJECT: S\nBody without marker", want: ErrMissingBody},
		{name: "empty body", in: "SUBJECT: S\nEMAIL:\n   \n", want: ErrMissingBody},
		{name: "prose only", in: "I cannot help with that.", want: ErrMissingSubject},
		{name: "indented subject marker", in: "Here you go:\n  SUBJECT: S\nEMAIL:\nBody", want: ErrMissingSubject},
		{name: "indented body marker", in: "SUBJECT: S\n\tEMAIL:\nBody", want: ErrMissingBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDraft(tt.in)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
