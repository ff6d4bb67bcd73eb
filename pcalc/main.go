// Copyright © 2020 The Pea Authors under an MIT-style license.

// pcalc evaluates calculator programs.
//
// Usage:
//
//	pcalc eval <source>...
//	pcalc run <file>...
//	pcalc repl
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eaburns/parsec/calc"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const (
	historyFile = ".pcalc_history"
	promptMain  = "> "
	promptCont  = ". "
)

var (
	verbose int
	trace   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pcalc",
		Short:         "Evaluate integer calculator programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			v := verbose
			if trace && v < 2 {
				v = 2
			}
			commonlog.Configure(v, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "log a trace of the parse")

	rootCmd.AddCommand(newEvalCmd(), newRunCmd(), newReplCmd())
	if err := rootCmd.Execute(); err != nil {
		die(err)
	}
}

func newParser() *calc.Parser {
	if !trace {
		return calc.NewParser(nil)
	}
	return calc.NewParser(commonlog.GetLogger("pcalc.parse"))
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <source>...",
		Short: "Evaluate each argument in a shared environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newParser()
			env := calc.Env{}
			for _, src := range args {
				if err := exec(p, env, src, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>...",
		Short: "Evaluate each file in a shared environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newParser()
			env := calc.Env{}
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := exec(p, env, string(data), cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(newParser(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func exec(p *calc.Parser, env calc.Env, src string, w io.Writer) error {
	stmts, err := p.Parse(src)
	if err != nil {
		return err
	}
	vs, err := env.Run(stmts)
	for _, v := range vs {
		fmt.Fprintln(w, v)
	}
	return err
}

func repl(p *calc.Parser, out, errOut io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	log := commonlog.GetLogger("pcalc.repl")
	histPath, err := historyPath()
	if err != nil {
		log.Warningf("no history: %s", err)
	} else {
		if err := loadHistory(ln, histPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warningf("failed to read history: %s", err)
		}
		defer func() {
			if err := saveHistory(ln, histPath); err != nil {
				log.Warningf("failed to write history: %s", err)
			}
		}()
	}

	env := calc.Env{}
	for {
		src, ok := read(p, ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err := exec(p, env, src, out); err != nil {
			fmt.Fprintln(errOut, err)
		}
	}
}

func historyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyFile), nil
}

func loadHistory(ln *liner.State, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = ln.ReadHistory(f)
	return err
}

func saveHistory(ln *liner.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := ln.WriteHistory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// read reads lines until they form a complete program
// or the input ends.
func read(p *calc.Parser, ln *liner.State) (string, bool) {
	var s strings.Builder
	for {
		prompt := promptMain
		if s.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true
		case err != nil:
			return "", false
		}
		if s.Len() > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(line)
		if _, err := p.Parse(s.String()); !calc.Incomplete(err) {
			return s.String(), true
		}
	}
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
