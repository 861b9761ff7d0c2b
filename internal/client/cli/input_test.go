package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// stubTerminal makes GetPassword behave as if stdin were (or were not) a tty.
func stubTerminal(t *testing.T, tty bool, pw string, err error) {
	t.Helper()
	oldRead, oldTTY := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTTY })

	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, "Secret123", nil)

	var out bytes.Buffer
	got, err := GetPassword(rdr(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "Secret123", got)
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, "", errors.New("boom"))

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, "never-used", nil)

	var out bytes.Buffer
	got, err := GetPassword(rdr("piped-secret\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "piped-secret", got)
}

func TestGetYesNo(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := GetYesNo(rdr(in), "Show badge?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
