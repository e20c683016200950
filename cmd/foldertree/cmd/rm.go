package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/pkg/foldertree"
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree := foldertree.New(
			foldertree.WithMaxFolderNameLength(effectiveMaxNameLen()),
			foldertree.WithLogger(log),
		)
		if err := tree.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
