package server

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/renato0307/tutor/internal/logging"
)

// studentContextKey holds the student bound to the authenticated key
var studentContextKey = &contextKey{"student"}

type contextKey struct {
	name string
}

// publicKeyHandler accepts keys listed in authorizedKeysPath. The comment of
// each authorized_keys line names the student the key belongs to, and the
// login name must match it.
func publicKeyHandler(authorizedKeysPath string) ssh.PublicKeyHandler {
	return func(ctx ssh.Context, key ssh.PublicKey) bool {
		student, ok := authorizeKey(ctx.User(), key, authorizedKeysPath)
		if !ok {
			return false
		}
		ctx.SetValue(studentContextKey, student)
		return true
	}
}

// authorizeKey returns the student clientKey is bound to when user may log in with it
func authorizeKey(user string, clientKey gossh.PublicKey, authorizedKeysPath string) (string, bool) {
	fingerprint := gossh.FingerprintSHA256(clientKey)
	student, found := keyStudent(clientKey, authorizedKeysPath)
	switch {
	case !found:
		logging.Logger.Warn("Unauthorized SSH key",
			"user", user,
			"fingerprint", fingerprint,
			"key_type", clientKey.Type())
		return "", false
	case student == "":
		logging.Logger.Warn("Authorized key names no student, add one as the key comment",
			"user", user,
			"fingerprint", fingerprint)
		return "", false
	case student != user:
		logging.Logger.Warn("SSH key belongs to another student",
			"user", user,
			"student_id", student,
			"fingerprint", fingerprint)
		return "", false
	}

	logging.Logger.Info("SSH key authenticated",
		"student_id", student,
		"fingerprint", fingerprint,
		"key_type", clientKey.Type())
	return student, true
}

// keyStudent looks clientKey up in an authorized_keys file and returns the
// comment of its line
func keyStudent(clientKey gossh.PublicKey, authorizedKeysPath string) (string, bool) {
	file, err := os.Open(authorizedKeysPath)
	if err != nil {
		logging.Logger.Warn("Failed to open authorized_keys", "error", err, "path", authorizedKeysPath)
		return "", false
	}
	defer file.Close()

	want := clientKey.Marshal()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		authorizedKey, comment, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			logging.Logger.Debug("Skipping unparsable authorized_keys line", "error", err)
			continue
		}
		if bytes.Equal(want, authorizedKey.Marshal()) {
			return strings.TrimSpace(comment), true
		}
	}

	if err := scanner.Err(); err != nil {
		logging.Logger.Error("Error reading authorized_keys", "error", err)
	}
	return "", false
}
