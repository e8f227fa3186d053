// Command sigil tags PDF documents with accessibility structure trees.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	sigil "github.com/tsawler/sigil"
	"github.com/tsawler/sigil/document"
	"github.com/tsawler/sigil/extract"
	"github.com/tsawler/sigil/model"
	"github.com/tsawler/sigil/report"
	"github.com/tsawler/sigil/sidecar"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sigil",
		Short: "Accessibility structure-tree synthesis for PDF documents",
		Long: `Sigil reconciles extracted PDF page elements with a sidecar of user
edits, builds a semantically tagged structure tree, and correlates tree
leaves to marked content in each page's content stream.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file")

	rootCmd.AddCommand(tagCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(sidecarCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveConfig merges an optional config file under the flags a command
// actually received.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	var cfg Config
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("sidecar") {
		cfg.Sidecar, _ = cmd.Flags().GetString("sidecar")
	}
	if cmd.Flags().Changed("skip-metadata") {
		cfg.SkipMetadata, _ = cmd.Flags().GetBool("skip-metadata")
	}
	if cmd.Flags().Changed("json") {
		cfg.ReportJSON, _ = cmd.Flags().GetString("json")
	}
	if cmd.Flags().Changed("html") {
		cfg.ReportHTML, _ = cmd.Flags().GetString("html")
	}
	return cfg, nil
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("sidecar", "", "sidecar JSON file with user edits")
	cmd.Flags().Bool("skip-metadata", false, "do not apply document metadata")
	cmd.Flags().String("json", "", "write a JSON report to this path")
	cmd.Flags().String("html", "", "write an HTML report to this path")
}

func tagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <input.pdf>",
		Short: "Build the structure tree for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			result, warnings, err := runPipeline(cmd.Context(), args[0], cfg)
			if err != nil {
				return err
			}

			fmt.Println(result.Summary())
			if len(warnings) > 0 {
				fmt.Fprintln(os.Stderr, sigil.FormatWarnings(warnings))
			}
			return writeReports(result, warnings, cfg)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <input.pdf>",
		Short: "Run the pipeline and emit a remediation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.ReportJSON == "" && cfg.ReportHTML == "" {
				return fmt.Errorf("report requires --json or --html")
			}
			result, warnings, err := runPipeline(cmd.Context(), args[0], cfg)
			if err != nil {
				return err
			}
			return writeReports(result, warnings, cfg)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.pdf>",
		Short: "Show what extraction finds on each page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := extract.Open(args[0])
			if err != nil {
				return err
			}
			defer ex.Close()

			fmt.Printf("%s: %d pages\n", args[0], ex.PageCount())
			for page := 0; page < ex.PageCount(); page++ {
				elements, positions, err := ex.PageContent(page)
				if err != nil {
					fmt.Printf("  page %d: %v\n", page+1, err)
					continue
				}
				fmt.Printf("  page %d: %d elements, %d text positions\n",
					page+1, len(elements), len(positions))
				for _, elem := range elements {
					text := elem.Text
					if len(text) > 60 {
						text = text[:60] + "..."
					}
					fmt.Printf("    %-12s %-8s %s\n", elem.ID, elem.Role, text)
				}
			}
			return nil
		},
	}
}

func sidecarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sidecar",
		Short: "Manage sidecar files",
	}

	initCmd := &cobra.Command{
		Use:   "init <input.pdf>",
		Short: "Create an empty sidecar for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = args[0] + ".sidecar.json"
			}

			ex, err := extract.Open(args[0])
			if err != nil {
				return err
			}
			defer ex.Close()

			sc := sidecar.Skeleton(ex.PageCount())
			if err := sc.Save(out); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d pages)\n", out, ex.PageCount())
			return nil
		},
	}
	initCmd.Flags().String("out", "", "output path (default <input>.sidecar.json)")

	cmd.AddCommand(initCmd)
	return cmd
}

// runPipeline opens the input, loads page contents into the document
// boundary, and runs a tagging session.
func runPipeline(ctx context.Context, path string, cfg Config) (*sigil.Result, []sigil.Warning, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ex, err := extract.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer ex.Close()

	doc := document.NewMemory(ex.PageCount())
	for page := 0; page < ex.PageCount(); page++ {
		contents, err := ex.PageRawContents(page)
		if err != nil {
			continue // correlation reports the page-scoped warning
		}
		if contents != nil {
			_ = doc.SetPageContents(page, contents)
		}
	}

	session := sigil.New(doc, sigil.SourceFunc(
		func(page int) ([]model.Element, []model.TextPosition, error) {
			return ex.PageContent(page)
		}))
	if cfg.Sidecar != "" {
		session.WithSidecarFile(cfg.Sidecar)
	}
	if cfg.SkipMetadata {
		session.SkipMetadata()
	}
	return session.Build(ctx)
}

func writeReports(result *sigil.Result, warnings []sigil.Warning, cfg Config) error {
	if cfg.ReportJSON == "" && cfg.ReportHTML == "" {
		return nil
	}
	r := report.New(result, warnings)
	if cfg.ReportJSON != "" {
		f, err := os.Create(cfg.ReportJSON)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := r.Write(f); err != nil {
			return err
		}
	}
	if cfg.ReportHTML != "" {
		f, err := os.Create(cfg.ReportHTML)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := r.WriteHTML(f); err != nil {
			return err
		}
	}
	return nil
}
