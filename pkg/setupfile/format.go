package setupfile

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/shell"
)

// Formatter rewrites Python source.
type Formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// BuiltinFormatter applies whitespace normalisation only: trailing
// whitespace is stripped, tabs in indentation become four spaces, runs of
// more than two blank lines are collapsed and the file ends with exactly one
// newline.
type BuiltinFormatter struct{}

// Format implements Formatter.
func (BuiltinFormatter) Format(_ context.Context, src []byte) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, expandIndent(line))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(out, "\n") + "\n"), nil
}

func expandIndent(line string) string {
	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	if !strings.Contains(indent, "\t") {
		return line
	}
	return strings.ReplaceAll(indent, "\t", "    ") + body
}

// CommandFormatter pipes source through an external formatter that reads
// stdin and writes stdout, such as "autopep8 -", then applies the builtin
// pass.
type CommandFormatter struct {
	Command string
	Runner  shell.Runner
	Logger  *log.Logger
}

// Format implements Formatter. A formatter that is not installed is skipped
// with a warning.
func (f *CommandFormatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	logger := f.Logger
	if logger == nil {
		logger = log.Default()
	}
	cmd, err := shell.Parse(f.Command)
	if err != nil {
		return nil, err
	}
	cmd.Stdin = bytes.NewReader(src)

	res, err := f.Runner.Run(ctx, cmd)
	switch {
	case errors.Is(err, errors.ErrCodeCommandNotFound):
		logger.Warn("formatter not installed, using builtin formatting", "cmd", cmd.Name)
		return BuiltinFormatter{}.Format(ctx, src)
	case err != nil:
		return nil, err
	}
	return BuiltinFormatter{}.Format(ctx, []byte(res.Stdout))
}
