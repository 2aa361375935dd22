package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const block = `Frieren | Sousou no Frieren

‣ Genres : Adventure, Drama
‣ Type : TV
‣ Average Rating : 91
‣ Status : FINISHED
‣ First aired : 2023-9-29
‣ Last aired : 2024-3-22
‣ Runtime : 24 minutes
‣ No of episodes : 28 episodes

‣ Synopsis : An elf mage outlives her party. She sets out to understand people.`

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFormatCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.txt")
	require.NoError(t, os.WriteFile(path, []byte(block), 0o600))

	out, err := execute(t, "", "format", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<b>Frieren | Sousou no Frieren</b>")
	assert.Contains(t, out, "<b>❃ Episodes :</b> 28")
}

func TestFormatCommand_Stdin(t *testing.T) {
	out, err := execute(t, block, "format")
	require.NoError(t, err)
	assert.Contains(t, out, "Powered By")
}

func TestFormatCommand_Rejected(t *testing.T) {
	_, err := execute(t, "just a title", "format")
	assert.ErrorIs(t, err, errNotStructured)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animefmt.yaml")

	out, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graphql.anilist.co")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "animefmt version "))
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(&tgbotapi.Error{Code: 401, Message: "Unauthorized"}))
	assert.True(t, isTransient(&tgbotapi.Error{Code: 502, Message: "Bad Gateway"}))
	assert.True(t, isTransient(&tgbotapi.Error{Code: 429, Message: "Too Many Requests"}))
	assert.True(t, isTransient(errors.New("dial tcp: connection refused")))
}
