package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lostfound/internal/app"
	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/export"
	"github.com/five82/lostfound/internal/present"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalogue, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want table or yaml)", format)
			}

			rt, err := opts.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			snap, err := app.LoadCatalogue(cmd.Context(), rt.Client, rt.Logger)
			if err != nil {
				return errors.New(catalogue.Reason(err, catalogue.OpList))
			}

			w := cmd.OutOrStdout()
			if format == "yaml" {
				records := export.Records(snap.Entries, rt.Client)
				return export.WriteYAML(w, rt.Client.BaseURL(), records, time.Now())
			}
			return writeTable(w, rt.Renderer().List(snap.Entries))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or yaml")

	return cmd
}

func writeTable(w io.Writer, view present.ListView) error {
	if view.Empty() {
		_, err := fmt.Fprintln(w, view.Placeholder)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tUPLOADED\tDESCRIPTION\tIMAGE")
	for _, card := range view.Cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", card.ID, card.Filename, card.Date, card.Description, card.ImageURL)
	}
	return tw.Flush()
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an entry from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			w := cmd.OutOrStdout()
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), w, fmt.Sprintf("Delete entry #%d? [y/N] ", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(w, "Aborted")
					return nil
				}
			}

			rt, err := opts.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Client.Delete(cmd.Context(), id); err != nil {
				rt.Logger.Warn("delete failed", "id", id, "error", err)
				return errors.New(present.DeleteFailed(err))
			}
			rt.Logger.Info("entry deleted", "id", id)
			fmt.Fprintln(w, present.Deleted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question; anything but y or yes declines.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalogue to a YAML or Parquet file",
		Example: `  lostfound export --out catalogue.yaml
  lostfound export --out catalogue.parquet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			snap, err := app.LoadCatalogue(cmd.Context(), rt.Client, rt.Logger)
			if err != nil {
				return errors.New(catalogue.Reason(err, catalogue.OpList))
			}

			records := export.Records(snap.Entries, rt.Client)
			if err := export.WriteFile(out, rt.Client.BaseURL(), records, time.Now()); err != nil {
				return err
			}
			rt.Logger.Info("catalogue exported", "path", out, "entries", len(records))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.yaml, .yml or .parquet)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
