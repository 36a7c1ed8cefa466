package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newExecCommand creates the "exec" subcommand that runs editor command lines from a file or stdin.
func newExecCommand(opts *Options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "exec [file]",
		Short: "Run editor commands, one per line",
		Long: "Run editor commands read from file (stdin when omitted). Each line is a command such as\n" +
			"\"cmd add -kind cube -name Wall\"; the \"cmd \" prefix is optional. Blank lines and lines\n" +
			"starting with # are ignored.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}
			if err := runLines(cmd, e.Commands().ExecuteLine, in); err != nil {
				return err
			}
			if save {
				return e.SaveProject(true)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the project after the last command")
	return cmd
}

func runLines(cmd *cobra.Command, exec func(ctx context.Context, line string) error, in io.Reader) error {
	logger := LoggerFromContext(cmd.Context())
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "cmd ") {
			line = "cmd " + line
		}
		logger.Debug("exec", "line", lineNo, "command", line)
		if err := exec(cmd.Context(), line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}
