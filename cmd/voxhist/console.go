package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/voxmemento/pkg/console"
	"github.com/spf13/cobra"
)

var (
	consoleExpr string

	consoleCmd = &cobra.Command{
		Use:   "console",
		Short: "Evaluate memento console expressions against a demo history",
		Long: `Builds a small demo scene with a few recorded edits and evaluates
expressions such as (memento-info), (memento-size) or (memento-group 1).
Without -e, expressions are read line by line from stdin.`,
		RunE: runConsole,
	}
)

func init() {
	consoleCmd.Flags().StringVarP(&consoleExpr, "eval", "e", "", "expression to evaluate")
}

func runConsole(cmd *cobra.Command, args []string) error {
	s, err := newStore(logger)
	if err != nil {
		return err
	}
	defer s.Shutdown()
	if _, err := demoScene(s); err != nil {
		return err
	}
	c := console.New(s, cfg.Console.Timeout)
	out := cmd.OutOrStdout()

	if consoleExpr != "" {
		return evalAndPrint(out, c, consoleExpr)
	}
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := evalAndPrint(out, c, line); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		}
	}
	return sc.Err()
}

func evalAndPrint(w io.Writer, c *console.Console, source string) error {
	value, evalErrs, err := c.Eval(source)
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = e
		}
		return errors.Join(errs...)
	}
	fmt.Fprintln(w, strings.TrimRight(value, "\n"))
	return nil
}
