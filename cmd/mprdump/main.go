// mprdump decodes Bio-Logic .mpr files and prints their contents as a table
// or as JSON. Recoverable decode conditions are logged as warnings; only a
// file that cannot be decoded at all fails the run.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/echemdata/galvani"
	"github.com/echemdata/galvani/mpr"
)

var (
	jsonOutput bool
	strict     bool
	withRows   bool
	maxRows    int
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "mprdump [flags] file.mpr...",
		Short: "Decode Bio-Logic EC-Lab .mpr files",
		Long: "mprdump decodes one or more EC-Lab .mpr binary files and prints the\n" +
			"technique settings, column schema and data records. Compressed captures\n" +
			"(gzip, zstd, lz4, s2) are unwrapped automatically.",
		Args: cobra.MinimumNArgs(1),
		RunE: runDump,

		SilenceUsage: true,
	}

	root.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")
	root.Flags().BoolVar(&strict, "strict", false, "fail on unknown module tags")
	root.Flags().BoolVar(&withRows, "rows", false, "print data rows, not just the summary")
	root.Flags().IntVar(&maxRows, "max-rows", 0, "limit printed rows (0 = all)")
	root.Flags().StringVar(&logLevel, "log-level", "warning", "logrus level (debug, info, warning, error)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	var opts []mpr.Option
	if strict {
		opts = append(opts, mpr.WithStrictModules())
	}

	for _, path := range args {
		buf, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		file, err := galvani.Decode(buf, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		for _, w := range file.Warnings() {
			logrus.WithFields(logrus.Fields{
				"file":   path,
				"module": w.Module,
				"offset": w.Offset,
			}).Warn(w.Err, ": ", w.Detail)
		}

		if jsonOutput {
			if err := dumpJSON(path, file); err != nil {
				return err
			}
			continue
		}
		dumpTable(path, file)
	}

	return nil
}

// jsonFile is the JSON shape of one decoded file.
type jsonFile struct {
	Path        string              `json:"path"`
	Technique   string              `json:"technique"`
	StartDate   string              `json:"start_date,omitempty"`
	Channel     *uint8              `json:"channel,omitempty"`
	Comment     string              `json:"comment,omitempty"`
	Fingerprint string              `json:"fingerprint"`
	Archive     string              `json:"archive"`
	Columns     []string            `json:"columns"`
	Rows        [][]float64         `json:"rows,omitempty"`
	Flags       []map[string]uint8  `json:"flags,omitempty"`
	Loops       []uint32            `json:"loops,omitempty"`
	Warnings    []string            `json:"warnings,omitempty"`
	Settings    []map[string]string `json:"settings"`
}

func dumpJSON(path string, file *mpr.File) error {
	sch := file.Schema()

	out := jsonFile{
		Path:        path,
		Technique:   file.Settings().Technique.String(),
		Fingerprint: fmt.Sprintf("%016x", file.Fingerprint()),
		Archive:     file.Archive().String(),
	}
	if !file.StartDate().IsZero() {
		out.StartDate = file.StartDate().Format("2006-01-02")
	}
	if log := file.LogInfo(); log != nil {
		out.Channel = &log.Channel
		out.Comment = log.Comment
	}
	if loop := file.LoopInfo(); loop != nil {
		out.Loops = loop.Indexes
	}
	for _, col := range sch.Columns {
		out.Columns = append(out.Columns, col.Name)
	}
	for _, w := range file.Warnings() {
		out.Warnings = append(out.Warnings, w.String())
	}
	for _, rec := range file.Settings().Records {
		params := make(map[string]string, len(rec))
		for _, p := range rec {
			params[p.Name] = p.Value.String()
		}
		out.Settings = append(out.Settings, params)
	}

	if withRows {
		for i, row := range file.Rows() {
			if maxRows > 0 && i >= maxRows {
				break
			}
			cells := make([]float64, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = cell.Float()
			}
			out.Rows = append(out.Rows, cells)

			flags := make(map[string]uint8, len(row.Flags))
			for _, f := range row.Flags {
				flags[f.Name] = f.Value
			}
			out.Flags = append(out.Flags, flags)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func dumpTable(path string, file *mpr.File) {
	sch := file.Schema()

	fmt.Printf("%s\n", path)
	fmt.Printf("  technique:   %s\n", file.Settings().Technique)
	if !file.StartDate().IsZero() {
		fmt.Printf("  start date:  %s\n", file.StartDate().Format("2006-01-02"))
	}
	if log := file.LogInfo(); log != nil {
		fmt.Printf("  channel:     %d\n", log.Channel)
		if log.Comment != "" {
			fmt.Printf("  comment:     %s\n", log.Comment)
		}
	}
	if loop := file.LoopInfo(); loop != nil && len(loop.Indexes) > 0 {
		fmt.Printf("  loops at:    %v\n", loop.Indexes)
	}
	fmt.Printf("  fingerprint: %016x\n", file.Fingerprint())
	fmt.Printf("  records:     %d\n", len(file.Rows()))

	if !withRows {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	names := make([]string, 0, len(sch.Columns))
	for _, col := range sch.Columns {
		names = append(names, col.Name)
	}
	fmt.Fprintln(w, "  "+strings.Join(names, "\t"))

	for i, row := range file.Rows() {
		if maxRows > 0 && i >= maxRows {
			break
		}
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, fmt.Sprintf("%g", cell.Float()))
		}
		fmt.Fprintln(w, "  "+strings.Join(cells, "\t"))
	}
	w.Flush()
}
