package sound

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_TerminalBell(t *testing.T) {
	var buf bytes.Buffer
	p := &Player{bell: &buf}

	require.NoError(t, p.terminalBell())
	assert.Equal(t, "\a", buf.String())
}
