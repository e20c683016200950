package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/pkg/foldertree"
)

// job is one parsed REPL line, dispatched to whichever worker
// goroutine picks it up next - the same "shared tree, many
// goroutines" shape as pkg/foldertree's concurrency stress test,
// exercised here interactively instead of under a benchmark.
type job struct {
	line string
	done chan string
}

var replWorkers int

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive session against one long-lived tree",
	Long: `repl keeps a single tree alive for the whole session and spreads
incoming lines across a pool of worker goroutines, so that successive
operations are genuinely handled concurrently against the same tree -
this is the one place the CLI exercises the concurrency protocol rather
than opening a throwaway tree per invocation.

Commands (one per line):
  list <path>
  create <path>
  rm <path>
  mv <source> <target>
  quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return err
		}
		if workers <= 0 {
			workers = cfg.Workers
		}

		tree := foldertree.New(
			foldertree.WithMaxFolderNameLength(effectiveMaxNameLen()),
			foldertree.WithLogger(log),
		)

		jobs := make(chan job)
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				for j := range jobs {
					j.done <- runLine(tree, j.line)
				}
			}()
		}

		// Results are printed in input order by one printer goroutine,
		// so reading the next line never waits for the previous result.
		results := make(chan chan string, workers)
		printed := make(chan struct{})
		go func() {
			defer close(printed)
			for done := range results {
				fmt.Println(<-done)
			}
		}()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				break
			}
			done := make(chan string, 1)
			results <- done
			jobs <- job{line: line, done: done}
		}

		close(jobs)
		wg.Wait()
		close(results)
		<-printed
		return scanner.Err()
	},
}

func runLine(tree *foldertree.Tree, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "error: empty command"
	}

	switch fields[0] {
	case "list":
		if len(fields) != 2 {
			return "error: usage: list <path>"
		}
		contents, err := tree.List(fields[1])
		if err != nil {
			return "error: " + err.Error()
		}
		return contents
	case "create":
		if len(fields) != 2 {
			return "error: usage: create <path>"
		}
		if err := tree.Create(fields[1]); err != nil {
			return "error: " + err.Error()
		}
		return "ok"
	case "rm":
		if len(fields) != 2 {
			return "error: usage: rm <path>"
		}
		if err := tree.Remove(fields[1]); err != nil {
			return "error: " + err.Error()
		}
		return "ok"
	case "mv":
		if len(fields) != 3 {
			return "error: usage: mv <source> <target>"
		}
		if err := tree.Move(fields[1], fields[2]); err != nil {
			return "error: " + err.Error()
		}
		return "ok"
	default:
		return "error: unknown command " + fields[0]
	}
}

func init() {
	replCmd.Flags().IntVar(&replWorkers, "workers", 0, "number of worker goroutines (0 = use config default)")
	rootCmd.AddCommand(replCmd)
}
