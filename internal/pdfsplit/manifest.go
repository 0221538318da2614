package pdfsplit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/billflow/billflow/internal/filename"
	"github.com/billflow/billflow/internal/model"
)

// ManifestName is the metadata file written next to split segment files.
// Output filenames are lossy for digits-only accounts: "12345678_Jane
// Doe.pdf" reads back from the filename heuristics with account and name
// swapped. The manifest preserves the extracted fields exactly.
const ManifestName = "manifest.json"

// WriteManifest records segment metadata keyed by output filename, merging
// with any manifest already present in dir.
func WriteManifest(dir string, segments map[string]model.ExtractedSegment) error {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return err
	}
	if manifest == nil {
		manifest = make(map[string]model.ExtractedSegment, len(segments))
	}
	for name, seg := range segments {
		seg.Content = nil
		manifest[name] = seg
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0640); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the segment manifest from dir. A missing manifest is
// not an error; the directory may hold files produced elsewhere.
func ReadManifest(dir string) (map[string]model.ExtractedSegment, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest map[string]model.ExtractedSegment
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return manifest, nil
}

// SegmentsFromDir reconstructs segment records from previously split PDF
// files. Files recorded in the directory's manifest keep their extracted
// metadata; foreign files fall back to filename parsing.
func SegmentsFromDir(dir string, withContent bool) ([]model.ExtractedSegment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read segments directory: %w", err)
	}

	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	segments := make([]model.ExtractedSegment, 0, len(names))
	for _, name := range names {
		seg, ok := manifest[name]
		if !ok {
			parsed := filename.Parse(name)
			seg = model.ExtractedSegment{
				AccountNumber:  parsed.AccountNumber,
				CustomerName:   parsed.CustomerName,
				SourceFileName: name,
			}
		}
		if withContent {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("failed to read segment %s: %w", name, err)
			}
			seg.Content = data
		}
		segments = append(segments, seg)
	}

	return segments, nil
}
