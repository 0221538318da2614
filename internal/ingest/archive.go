package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// ArchiveFile is one PDF pulled out of an uploaded ZIP archive.
type ArchiveFile struct {
	Name string
	Data []byte
}

// ExtractPDFs returns the PDF entries of a ZIP archive as (filename, bytes)
// pairs. Directories, resource-fork noise, and non-PDF entries are skipped.
func ExtractPDFs(data []byte) ([]ArchiveFile, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var files []ArchiveFile
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		if strings.HasPrefix(f.Name, "__MACOSX/") || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(path.Ext(name), ".pdf") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
		}
		payload, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %s: %w", f.Name, err)
		}

		files = append(files, ArchiveFile{Name: name, Data: payload})
	}

	return files, nil
}
