package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func newPublicKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return key
}

func writeAuthorizedKeys(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authorized_keys")
	var content string
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// authorizedLine renders key as an authorized_keys line with a comment
func authorizedLine(key gossh.PublicKey, comment string) string {
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(key))) + " " + comment
}

func TestKeyStudent(t *testing.T) {
	alice := newPublicKey(t)
	uncommented := newPublicKey(t)
	other := newPublicKey(t)

	path := writeAuthorizedKeys(t,
		"# students allowed to connect",
		"",
		"not a key",
		authorizedLine(alice, "alice"),
		string(gossh.MarshalAuthorizedKey(uncommented)),
	)

	student, ok := keyStudent(alice, path)
	assert.True(t, ok)
	assert.Equal(t, "alice", student)

	student, ok = keyStudent(uncommented, path)
	assert.True(t, ok)
	assert.Empty(t, student)

	_, ok = keyStudent(other, path)
	assert.False(t, ok)
}

func TestKeyStudent_MissingFile(t *testing.T) {
	key := newPublicKey(t)
	_, ok := keyStudent(key, filepath.Join(t.TempDir(), "missing"))
	assert.False(t, ok)
}

func TestAuthorizeKey_LoginMustMatchKeyStudent(t *testing.T) {
	alice := newPublicKey(t)
	bob := newPublicKey(t)
	uncommented := newPublicKey(t)
	path := writeAuthorizedKeys(t,
		authorizedLine(alice, "alice"),
		authorizedLine(bob, "bob"),
		string(gossh.MarshalAuthorizedKey(uncommented)),
	)

	tests := []struct {
		name     string
		user     string
		key      gossh.PublicKey
		student  string
		accepted bool
	}{
		{name: "own key", user: "alice", key: alice, student: "alice", accepted: true},
		{name: "another student's key", user: "alice", key: bob, accepted: false},
		{name: "key without a student", user: "alice", key: uncommented, accepted: false},
		{name: "unknown key", user: "alice", key: newPublicKey(t), accepted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student, ok := authorizeKey(tt.user, tt.key, path)
			assert.Equal(t, tt.accepted, ok)
			assert.Equal(t, tt.student, student)
		})
	}
}
