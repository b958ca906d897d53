package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jpfielding/jfif.go/pkg/jfif"
	"github.com/jpfielding/jfif.go/pkg/logging"
	"github.com/jpfielding/jfif.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze cobra command
func NewAnalyzeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze JPEG/JFIF stream structure",
		Long:  "Decodes the JFIF APP0 header and walks the entropy-coded content, reporting header fields and byte-stuffing statistics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")

			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}

			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}

			return runAnalyze(ctx, filePath)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "JPEG/JFIF file path to analyze")

	return cmd
}

// runAnalyze decodes the header and destuffs the content using pkg/jfif
func runAnalyze(ctx context.Context, filePath string) error {
	data, err := readSource(filePath)
	if err != nil {
		return err
	}

	// Stable per-input session id, so reruns of the same file correlate
	ctx = logging.AppendCtx(ctx, slog.String("analysis", util.HashUUID(filePath)))
	slog.InfoContext(ctx, "analyzing", "file", filePath, "bytes", len(data), "md5", util.Md5ThenHex(data))

	hdr, err := jfif.DecodeHeader(data)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	fmt.Printf("Total bytes: %d\n\n", len(data))

	fmt.Println("=== JFIF Header ===")
	printHeader(os.Stdout, hdr)
	fmt.Println()

	fmt.Println("=== Entropy Content ===")
	fmt.Printf("Content bytes: %d\n", len(hdr.Content))
	if len(hdr.Content) > 20 {
		fmt.Printf("First 20 bytes: % X\n", hdr.Content[:20])
	}

	r := jfif.NewReader(bytes.NewReader(hdr.Content))
	stats, err := r.Destuff(io.Discard)
	if err != nil {
		return fmt.Errorf("destuff error: %w", err)
	}

	fmt.Printf("Logical bytes: %d\n", stats.Logical)
	fmt.Printf("Stuffed pairs: %d\n", stats.Stuffed)
	if stats.Marker {
		fmt.Println("Terminated by: marker")
	} else {
		fmt.Println("Terminated by: end of stream")
	}

	slog.InfoContext(ctx, "analyzed",
		"jfif", hdr.HasJFIF(),
		"logical", stats.Logical,
		"stuffed", stats.Stuffed,
		"marker", stats.Marker,
	)
	return nil
}

// printHeader writes the header fields in the text format
func printHeader(w io.Writer, hdr *jfif.Header) {
	if !hdr.HasJFIF() {
		fmt.Fprintln(w, "No JFIF APP0 segment (raw entropy stream)")
		return
	}
	fmt.Fprintf(w, "Identifier: %q\n", hdr.Identifier)
	fmt.Fprintf(w, "Version: %d.%02d\n", hdr.VersionMajor, hdr.VersionMinor)
	fmt.Fprintf(w, "Length: %d\n", hdr.Length)
	fmt.Fprintf(w, "Units: %d (0=aspect, 1=dpi, 2=dpcm)\n", hdr.Units)
	fmt.Fprintf(w, "Density: %dx%d\n", hdr.XDensity, hdr.YDensity)
	fmt.Fprintf(w, "Thumbnail: %dx%d\n", hdr.XThumbnail, hdr.YThumbnail)
}

// headerView shapes a Header for JSON output without the raw content
func headerView(hdr *jfif.Header) map[string]any {
	return map[string]any{
		"jfif":       hdr.HasJFIF(),
		"identifier": hdr.Identifier,
		"version":    fmt.Sprintf("%d.%02d", hdr.VersionMajor, hdr.VersionMinor),
		"length":     hdr.Length,
		"units":      hdr.Units,
		"xdensity":   hdr.XDensity,
		"ydensity":   hdr.YDensity,
		"xthumbnail": hdr.XThumbnail,
		"ythumbnail": hdr.YThumbnail,
		"content":    len(hdr.Content),
	}
}
