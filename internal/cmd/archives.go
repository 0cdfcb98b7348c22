package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dablenparty/dablenutil/internal/config"
	"github.com/dablenparty/dablenutil/logging"
	"github.com/spf13/cobra"
)

func newArchivesCmd() *cobra.Command {
	var (
		match    string
		since    time.Duration
		jsonOut  bool
		allNames bool
	)

	archivesCmd := &cobra.Command{
		Use:   "archives",
		Short: "List rotated log archives, newest first",
		Long: `List the gzip archives produced by rotation in the log folder.

Examples:
  dablenutil archives
  dablenutil archives --match 'myapp_2024-*'
  dablenutil archives --since 72h --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			filter := logging.ArchiveFilter{Match: match}
			if !allNames {
				filter.PackageName = cfg.Logging.PackageName
			}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}

			archives, err := logging.ListArchives(cfg.Logging.Dir, filter)
			if err != nil {
				return err
			}

			if jsonOut {
				return printArchivesJSON(cmd.OutOrStdout(), archives)
			}
			return printArchivesTable(cmd.OutOrStdout(), archives)
		},
	}

	archivesCmd.Flags().StringVarP(&match, "match", "m", "", "glob matched against archive names")
	archivesCmd.Flags().DurationVar(&since, "since", 0, "only archives newer than this (e.g. 24h)")
	archivesCmd.Flags().BoolVar(&jsonOut, "json", false, "Output archives as JSON")
	archivesCmd.Flags().BoolVarP(&allNames, "all", "a", false, "include archives of every package, not just the configured one")

	archivesCmd.AddCommand(newArchivesCatCmd())
	return archivesCmd
}

func newArchivesCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <name>",
		Short: "Decompress an archive to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			name := args[0]
			if filepath.Base(name) != name {
				return fmt.Errorf("archive name %q must not contain a path", name)
			}
			if _, _, ok := logging.ParseArchiveName(name); !ok {
				return fmt.Errorf("%q is not an archive name (want [package_]YYYY-MM-DD_HH-MM-SS%s)", name, logging.ArchiveExt)
			}

			data, _, err := logging.ReadArchive(filepath.Join(cfg.Logging.Dir, name))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

type archiveJSON struct {
	Name    string    `json:"name"`
	Package string    `json:"package,omitempty"`
	Time    time.Time `json:"time"`
	Size    int64     `json:"size"`
}

func printArchivesJSON(w io.Writer, archives []logging.Archive) error {
	out := make([]archiveJSON, 0, len(archives))
	for _, a := range archives {
		out = append(out, archiveJSON{
			Name:    a.Name,
			Package: a.PackageName,
			Time:    a.Time,
			Size:    a.Size,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printArchivesTable(w io.Writer, archives []logging.Archive) error {
	if len(archives) == 0 {
		_, err := fmt.Fprintln(w, "No archives")
		return err
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	dim := r.NewStyle().Foreground(lipgloss.Color("8"))

	nameWidth := len("NAME")
	for _, a := range archives {
		nameWidth = max(nameWidth, len(a.Name))
	}

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-*s  %-19s  %10s", nameWidth, "NAME", "CREATED", "SIZE")))
	b.WriteByte('\n')
	for _, a := range archives {
		fmt.Fprintf(&b, "%-*s  %s  %10s\n",
			nameWidth, a.Name,
			dim.Render(a.Time.Format("2006-01-02 15:04:05")),
			formatSize(a.Size))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
