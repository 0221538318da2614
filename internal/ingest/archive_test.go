package ingest

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractPDFs(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"statements/jan.pdf":        []byte("%PDF-1.7 jan"),
		"statements/readme.txt":     []byte("notes"),
		"__MACOSX/._jan.pdf":        []byte("fork"),
		"statements/.hidden.pdf":    []byte("hidden"),
		"statements/feb.PDF":        []byte("%PDF-1.7 feb"),
		"statements/subdir/":        nil,
	})

	files, err := ExtractPDFs(data)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byName := make(map[string][]byte, len(files))
	for _, f := range files {
		byName[f.Name] = f.Data
	}
	assert.Equal(t, []byte("%PDF-1.7 jan"), byName["jan.pdf"])
	assert.Equal(t, []byte("%PDF-1.7 feb"), byName["feb.PDF"])
}

func TestExtractPDFs_NotAnArchive(t *testing.T) {
	_, err := ExtractPDFs([]byte("definitely not a zip"))
	assert.Error(t, err)
}
