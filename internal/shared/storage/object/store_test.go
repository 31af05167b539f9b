package object

import (
	"strings"
	"testing"
)

func TestKeyForHashesUserAndKeepsName(t *testing.T) {
	key, err := KeyFor("user-1", "outreach-email-abc.txt")
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	if strings.Contains(key, "user-1") {
		t.Fatalf("key leaks user id: %s", key)
	}
	if !strings.HasSuffix(key, "/outreach-email-abc.txt") {
		t.Fatalf("unexpected key %s", key)
	}
}

func TestKeyForRejectsTraversal(t *testing.T) {
	if _, err := KeyFor("user-1", "../secrets"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}
