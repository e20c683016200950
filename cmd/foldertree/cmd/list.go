package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/pkg/foldertree"
)

var listCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "List the direct children of a folder",
	Long: `List opens a fresh, empty tree (foldertree keeps no state between
invocations) and lists the given folder's direct children. Since nothing
was created first, listing the root always prints an empty result and
any other path reports "not found". It exists to exercise and demonstrate List's error codes; build a
real sequence of operations with "foldertree repl".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree := foldertree.New(
			foldertree.WithMaxFolderNameLength(effectiveMaxNameLen()),
			foldertree.WithLogger(log),
		)
		contents, err := tree.List(args[0])
		if err != nil {
			return err
		}
		fmt.Println(contents)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
