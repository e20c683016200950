package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/pkg/foldertree"
)

var mvCmd = &cobra.Command{
	Use:   "mv <source> <target>",
	Short: "Move (rename/relocate) a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree := foldertree.New(
			foldertree.WithMaxFolderNameLength(effectiveMaxNameLen()),
			foldertree.WithLogger(log),
		)
		if err := tree.Move(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("moved %s -> %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
