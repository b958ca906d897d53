package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/jfif.go/pkg/jfif"
	"github.com/jpfielding/jfif.go/pkg/logging"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jfifctl",
		Short: "a CLI to inspect JPEG/JFIF streams",
		Long:  "the long story",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")

			// Parse log level
			var level slog.Level
			if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
				level = slog.LevelInfo
			}
			if logFile != "" {
				slog.SetDefault(logging.FileLogger(logFile, true, level))
			} else {
				slog.SetDefault(logging.Logger(os.Stderr, false, level))
			}

			if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", err)
			}

		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewHeaderCmd(ctx),
		NewDestuffCmd(ctx),
		NewAnalyzeCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "Log to a rotated file instead of stderr")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(gitsha)
		},
	}
	return cmd
}

// NewHeaderCmd decodes the JFIF APP0 header of a stream and prints its fields
func NewHeaderCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header",
		Short: "JFIF APP0 header decode",
		Long:  "JFIF APP0 header decode",
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, _ := cmd.Flags().GetString("uri")
			data, err := readSource(uri)
			if err != nil {
				return err
			}
			hdr, err := jfif.DecodeHeader(data)
			if err != nil {
				return fmt.Errorf("failed to decode header: %w", err)
			}
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				printHeader(os.Stdout, hdr)
			default:
				j, _ := json.Marshal(headerView(hdr))
				os.Stdout.Write(j)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "-", "JPEG file path, or - for stdin")
	pf.StringP("format", "f", "json", "output format (text|json)")
	return cmd
}

// NewDestuffCmd streams the destuffed entropy bytes of a JPEG to a file or stdout
func NewDestuffCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destuff",
		Short: "remove JPEG byte stuffing from the entropy stream",
		Long:  "decodes the JFIF header, then writes the destuffed entropy-coded bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, _ := cmd.Flags().GetString("uri")
			outPath, _ := cmd.Flags().GetString("out")
			data, err := readSource(uri)
			if err != nil {
				return err
			}
			hdr, err := jfif.DecodeHeader(data)
			if err != nil {
				return fmt.Errorf("failed to decode header: %w", err)
			}

			var out io.Writer = os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			buffered := bufio.NewWriter(out)

			r := jfif.NewReader(bytes.NewReader(hdr.Content))
			stats, err := r.Destuff(buffered)
			if err != nil {
				return fmt.Errorf("destuff failed: %w", err)
			}
			if err := buffered.Flush(); err != nil {
				return fmt.Errorf("failed to flush output: %w", err)
			}
			slog.InfoContext(ctx, "destuffed entropy stream",
				"logical", stats.Logical,
				"stuffed", stats.Stuffed,
				"marker", stats.Marker,
			)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "-", "JPEG file path, or - for stdin")
	pf.StringP("out", "o", "", "output path (default stdout)")
	return cmd
}

// readSource slurps a file path or stdin ("-")
func readSource(uri string) ([]byte, error) {
	uri = strings.TrimPrefix(uri, "file://")
	if uri == "-" || uri == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
