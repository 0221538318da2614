package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billflow/billflow/internal/engine"
	"github.com/billflow/billflow/internal/filename"
	"github.com/billflow/billflow/internal/ingest"
	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pdfsplit"
)

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <statements.pdf|statements.zip>",
		Short: "Split statement PDFs into one file per customer account",
		Long: `Split a statement PDF (or a ZIP archive of PDFs) into per-account files.

When per-page text is available (see --text-dir), pages are grouped by the
account number detected in the text. Otherwise the account is recovered from
the filename alone and the whole document becomes one segment.`,
		Args: cobra.ExactArgs(1),
		RunE: runSplit,
	}

	cmd.Flags().StringP("out", "o", "segments", "Output directory for split PDFs")
	cmd.Flags().String("text-dir", "", "Directory of per-page text sidecars (<name>.page-N.txt)")

	_ = viper.BindPFlag("split.out", cmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("split.text_dir", cmd.Flags().Lookup("text-dir"))

	return cmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	outDir := viper.GetString("split.out")
	textDir := viper.GetString("split.text_dir")

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rules, err := loadRules(ctx, store)
	if err != nil {
		return err
	}

	files, err := loadInput(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", args[0])
	}

	segmenter := engine.NewSegmenter(rules)
	bar := progressbar.Default(int64(len(files)), "splitting")
	written := 0
	manifest := make(map[string]model.ExtractedSegment)

	for _, file := range files {
		pageCount, err := pdfsplit.PageCount(file.Data)
		if err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}

		pages, err := loadPageTexts(textDir, file.Name, pageCount)
		if err != nil {
			return err
		}

		var segments []model.ExtractedSegment
		if len(pages) > 0 {
			segments = segmenter.Segment(pages, file.Name)
		} else {
			parsed := filename.Parse(file.Name)
			segments = []model.ExtractedSegment{{
				AccountNumber:  parsed.AccountNumber,
				CustomerName:   parsed.CustomerName,
				SourceFileName: file.Name,
				StartPage:      1,
				EndPage:        pageCount,
			}}
		}

		for _, seg := range segments {
			seg.Content, err = pdfsplit.SegmentBytes(file.Data, seg)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Name, err)
			}
			if _, err := pdfsplit.WriteSegment(seg, outDir); err != nil {
				return err
			}
			manifest[pdfsplit.OutputName(seg)] = seg
			written++
		}

		_ = bar.Add(1)
	}

	if err := pdfsplit.WriteManifest(outDir, manifest); err != nil {
		return err
	}

	fmt.Printf("\nWrote %d segment file(s) to %s\n", written, outDir)
	return nil
}

// loadInput reads the argument as either a single PDF or a ZIP of PDFs.
func loadInput(path string) ([]ingest.ArchiveFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return ingest.ExtractPDFs(data)
	}
	return []ingest.ArchiveFile{{Name: filepath.Base(path), Data: data}}, nil
}

// loadPageTexts reads per-page text sidecars produced by an external
// extraction step. Missing pages are simply absent; the segmenter treats
// them as continuation pages.
func loadPageTexts(textDir, pdfName string, pageCount int) ([]engine.Page, error) {
	if textDir == "" {
		return nil, nil
	}

	base := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))
	var pages []engine.Page
	for i := 1; i <= pageCount; i++ {
		sidecar := filepath.Join(textDir, fmt.Sprintf("%s.page-%d.txt", base, i))
		data, err := os.ReadFile(sidecar)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read page text %s: %w", sidecar, err)
		}
		pages = append(pages, engine.Page{Number: i, Text: string(data)})
	}
	return pages, nil
}
