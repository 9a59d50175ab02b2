package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/lostfound/internal/app"
)

func newFindCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <image>",
		Short: "Search the catalogue for an image",
		Example: `  # Look for a photographed wallet
  lostfound find ~/Pictures/wallet.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			out, err := rt.Driver().Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOutcome(cmd.OutOrStdout(), out)
		},
	}
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	var info string

	cmd := &cobra.Command{
		Use:   "add <image>",
		Short: "Catalogue a found item",
		Example: `  lostfound add umbrella.png --info "Blue umbrella, platform 2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			out, err := rt.Driver().Add(cmd.Context(), args[0], info)
			if err != nil {
				return err
			}
			return printOutcome(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&info, "info", "", "where and when the item was found")

	return cmd
}

// printOutcome writes what the UI would have shown. An error banner becomes
// the command's error.
func printOutcome(w io.Writer, out app.Outcome) error {
	if out.Failed() {
		return errors.New(out.Error)
	}
	if out.Result != nil {
		for _, line := range out.Result.Lines() {
			fmt.Fprintln(w, line)
		}
	}
	if out.Success != "" {
		fmt.Fprintln(w, out.Success)
	}
	return nil
}
