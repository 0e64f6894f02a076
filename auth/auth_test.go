package auth

import (
	"os"
	"path"
	"testing"
)

func passwordFile(t *testing.T, content string) string {
	t.Helper()
	fn := path.Join(t.TempDir(), "passwords")
	if err := os.WriteFile(fn, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestReadPasswords(t *testing.T) {
	fn := passwordFile(t, "alice:pw1\n\nbob:pw2\n")
	a, err := ReadPasswords(fn)
	if err != nil {
		t.Fatalf("ReadPasswords: %v", err)
	}
	if !a.Authenticate("alice", "pw1") || !a.Authenticate("bob", "pw2") {
		t.Errorf("valid credentials rejected")
	}
	if a.Authenticate("alice", "pw2") || a.Authenticate("eve", "pw1") {
		t.Errorf("invalid credentials accepted")
	}
}

func TestReadPasswordsRejectsBadFiles(t *testing.T) {
	for _, content := range []string{
		"alice\n",            // no colon
		"alice:a:b\n",        // embedded colon in password
		"alice:x\nalice:y\n", // duplicated user
	} {
		fn := passwordFile(t, content)
		if _, err := ReadPasswords(fn); err == nil {
			t.Errorf("content %q should be rejected", content)
		}
	}
}

func TestReread(t *testing.T) {
	fn := passwordFile(t, "alice:old\n")
	a, err := ReadPasswords(fn)
	if err != nil {
		t.Fatalf("ReadPasswords: %v", err)
	}

	if err := os.WriteFile(fn, []byte("alice:new\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := a.Reread(); err != nil {
		t.Fatalf("Reread: %v", err)
	}
	if !a.Authenticate("alice", "new") || a.Authenticate("alice", "old") {
		t.Errorf("Reread did not install the new credentials")
	}

	// A bad file is an error and leaves the credentials unchanged.
	if err := os.WriteFile(fn, []byte("garbage\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := a.Reread(); err == nil {
		t.Errorf("Reread of a bad file should fail")
	}
	if !a.Authenticate("alice", "new") {
		t.Errorf("failed Reread must not discard the old credentials")
	}
}
