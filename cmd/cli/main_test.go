package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codexdb/pkg/config"
	"codexdb/pkg/core"
	"codexdb/pkg/logger"
	"codexdb/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, path string) (*session, *bytes.Buffer) {
	t.Helper()
	backend := storage.NewTextFile(path)
	catalog, err := core.Load(backend, logger.Noop())
	require.NoError(t, err)

	var out bytes.Buffer
	return &session{
		catalog: catalog,
		backend: backend,
		order:   core.InOrder,
		log:     logger.Noop(),
		out:     &out,
	}, &out
}

func TestSessionScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codices.txt")
	s, out := newTestSession(t, path)

	script := strings.Join([]string{
		"add 50;Grande Sertão;Guimarães Rosa",
		"add 30;Vidas Secas;Graciliano Ramos",
		"add 30;Outro;Alguém",
		"add nonsense",
		"get 30",
		"find Grande Sertão",
		"get 99",
		"list title",
		"height",
		"del 50",
		"deltitle Nope",
		"bogus",
		"exit",
	}, "\n")
	s.run(strings.NewReader(script))

	text := out.String()
	assert.Contains(t, text, "Added ID: 50 | Título: Grande Sertão | Autor: Guimarães Rosa")
	assert.Contains(t, text, "Ignored: ID 30")
	assert.Contains(t, text, "Usage: add <id>;<title>;<author>")
	assert.Contains(t, text, "ID: 30 | Título: Vidas Secas | Autor: Graciliano Ramos\n  2 nodes visited")
	assert.Contains(t, text, "Not found (1 nodes visited")
	assert.Contains(t, text, "ID tree height: 1 | Title tree height: 1 | Records: 2")
	assert.Contains(t, text, "Not found, nothing deleted")
	assert.Contains(t, text, "Unknown command: 'bogus'")
	assert.Contains(t, text, "Catalog saved to "+path)
	assert.True(t, strings.HasSuffix(text, "Bye!\n"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "30;Vidas Secas;Graciliano Ramos\n", string(raw))
}

func TestSessionExitWithoutChangesDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codices.txt")
	s, _ := newTestSession(t, path)

	s.run(strings.NewReader("list\nget 1\n"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenCatalog(t *testing.T) {
	dir := t.TempDir()

	catalog, backend, err := openCatalog(config.StorageConfig{Driver: "sqlite", Path: filepath.Join(dir, "c.db")}, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
	require.NoError(t, backend.Close())

	// A directory opens but cannot be read as a catalog.
	catalog, backend, err = openCatalog(config.StorageConfig{Driver: "text", Path: dir}, logger.Noop())
	assert.Error(t, err)
	assert.Nil(t, catalog)
	assert.Nil(t, backend)

	_, _, err = openCatalog(config.StorageConfig{Driver: "csv"}, logger.Noop())
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}
