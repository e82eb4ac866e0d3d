package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"codexdb/pkg/common"
	"codexdb/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*common.Record {
	return []*common.Record{
		common.NewRecord(50, "Grande Sertão", "Guimarães Rosa"),
		common.NewRecord(30, "Vidas Secas", "Graciliano Ramos"),
		common.NewRecord(70, "Macunaíma", "Mário de Andrade"),
	}
}

func assertSameRecords(t *testing.T, want, got []*common.Record) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, *want[i], *got[i])
	}
}

func TestTextFileRoundTrip(t *testing.T) {
	for _, name := range []string{"catalog.txt", "catalog.txt.zst", "catalog.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			b := NewTextFile(path)

			n, err := b.Save(slices.Values(sampleRecords()))
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			got, err := b.Load()
			require.NoError(t, err)
			assertSameRecords(t, sampleRecords(), got)
		})
	}
}

func TestTextFileZstdFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.zst")
	_, err := NewTextFile(path).Save(slices.Values(sampleRecords()))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 4)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])
}

func TestTextFileMissing(t *testing.T) {
	_, err := NewTextFile(filepath.Join(t.TempDir(), "absent.txt")).Load()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestTextFileSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	content := "1;Good;Author\nbroken line\n2;;Nobody\n3;Also Good;Someone\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := NewTextFile(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestTextFileSaveTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	b := NewTextFile(path)
	_, err := b.Save(slices.Values(sampleRecords()))
	require.NoError(t, err)

	_, err = b.Save(slices.Values(sampleRecords()[:1]))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "50;Grande Sertão;Guimarães Rosa\n", string(raw))
}

func TestTextFileSaveOpenFailure(t *testing.T) {
	b := NewTextFile(filepath.Join(t.TempDir(), "no", "such", "dir", "catalog.txt"))
	_, err := b.Save(slices.Values(sampleRecords()))
	assert.Error(t, err)
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	_, err = b.Load()
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	n, err := b.Save(slices.Values(sampleRecords()))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, b.Close())

	b2, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer b2.Close()

	got, err := b2.Load()
	require.NoError(t, err)
	assertSameRecords(t, sampleRecords(), got)

	_, err = b2.Save(slices.Values(sampleRecords()[2:]))
	require.NoError(t, err)
	got, err = b2.Load()
	require.NoError(t, err)
	assertSameRecords(t, sampleRecords()[2:], got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(config.StorageConfig{Driver: "text", Path: filepath.Join(dir, "c.txt")})
	require.NoError(t, err)
	assert.IsType(t, &TextFile{}, b)

	b, err = Open(config.StorageConfig{Driver: "SQLite", Path: filepath.Join(dir, "c.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = Open(config.StorageConfig{Driver: "csv"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, CompressionZstd, CompressionFor("a/b.ZST"))
	assert.Equal(t, CompressionLZ4, CompressionFor("b.lz4"))
	assert.Equal(t, CompressionNone, CompressionFor("b.txt"))
	assert.Equal(t, "zstd", CompressionZstd.String())
}

func TestTextFileOversizedLineIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	huge := strings.Repeat("x", 2<<20)
	content := "1;Good;Author\n2;" + huge + "\n3;Other;B"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := NewTextFile(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Equal(t, "B", got[1].Author)
}

func TestTextFileOversizedFieldIsTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	huge := strings.Repeat("y", 2<<20)
	content := "1;Good;Author\n2;Long;" + huge + "\n3;Other;B\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := NewTextFile(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, strings.Repeat("y", common.MaxFieldLen), got[1].Author)
	assert.Equal(t, "Other", got[2].Title)
}
