package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var errUnterminatedQuote = errors.New("unterminated quote")

func shellCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "run commands interactively against one running store",
		Action: func(c *cli.Context) error {
			if err := rt.start(c); err != nil {
				return err
			}
			rt.persistent = true
			defer func() {
				rt.persistent = false
				rt.token = ""
			}()
			defer rt.stop()
			return runShell(c, rt)
		},
	}
}

func runShell(c *cli.Context, rt *runtime) error {
	scanner := bufio.NewScanner(c.App.Reader)
	errOut := c.App.ErrWriter
	for {
		fmt.Fprint(rt.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(rt.out)
			return scanner.Err()
		}
		args, err := splitArgs(scanner.Text())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if args[0] == "logout" {
			rt.token = ""
			continue
		}

		sub := newApp(rt)
		sub.Reader = c.App.Reader
		sub.ErrWriter = errOut
		if err := sub.RunContext(c.Context, append([]string{c.App.Name}, args...)); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		if c.Context.Err() != nil {
			return c.Context.Err()
		}
	}
}

// splitArgs splits a command line on whitespace. Single and double quotes
// group words; a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
