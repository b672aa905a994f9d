package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/chromakit/internal/format"
	"github.com/spf13/cobra"
)

func (c *cli) fmtCmd() *cobra.Command {
	var check, canonical bool
	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format palette files",
		Long: `Format one or more palette files in-place. Prints the name of each file
that was modified. With --canonical, quoted color literals are also
rewritten to hex.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rewrite := format.Format
			if canonical {
				rewrite = format.Canonicalize
			}

			hasErrors := false
			needsFormatting := false

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
					hasErrors = true
					continue
				}

				content := string(data)
				formatted, err := rewrite(content)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
					hasErrors = true
					continue
				}

				if formatted == content {
					continue
				}

				fmt.Fprintln(cmd.OutOrStdout(), path)
				needsFormatting = true

				if !check {
					if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
						hasErrors = true
					}
				}
			}

			if hasErrors || (check && needsFormatting) {
				return errCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&check, "check", "c", false, "check if files are formatted (do not write changes)")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "rewrite quoted color literals to hex")
	return cmd
}
