package setupfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/project"
)

// Generator writes setup.py into a project directory.
type Generator struct {
	Dir       string
	Formatter Formatter   // nil uses BuiltinFormatter
	Logger    *log.Logger // nil uses log.Default()
}

// Path returns the location of setup.py.
func (g *Generator) Path() string {
	return filepath.Join(g.Dir, FileName)
}

// Generate renders params, keeps the user region of an existing file and
// writes the result. It reports whether the file content changed. When the
// existing file lacks its markers nothing is written.
func (g *Generator) Generate(ctx context.Context, params project.Params) (bool, error) {
	prev, out, err := g.render(ctx, params)
	if err != nil {
		return false, err
	}
	if prev != nil && bytes.Equal(prev, out) {
		g.logger().Debug("unchanged", "path", g.Path())
		return false, nil
	}
	if err := writeFileAtomic(g.Path(), out, 0o644); err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "write %s", FileName)
	}
	return true, nil
}

// Preview returns what Generate would write, without writing it.
func (g *Generator) Preview(ctx context.Context, params project.Params) ([]byte, error) {
	_, out, err := g.render(ctx, params)
	return out, err
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		return log.Default()
	}
	return g.Logger
}

// render returns the previous file content (nil when absent) and the new one.
func (g *Generator) render(ctx context.Context, params project.Params) (prev, out []byte, err error) {
	formatter := g.Formatter
	if formatter == nil {
		formatter = BuiltinFormatter{}
	}

	region := DefaultRegion
	prev, err = os.ReadFile(g.Path())
	switch {
	case err == nil:
		if region, err = UserRegion(string(prev)); err != nil {
			return nil, nil, err
		}
	case os.IsNotExist(err):
		prev = nil
		g.logger().Debug("creating new file", "path", g.Path())
	default:
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", FileName)
	}

	out, err = formatter.Format(ctx, Render(params, region))
	if err != nil {
		return nil, nil, err
	}
	return prev, out, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place. On failure the original file is left unchanged.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".autogen-tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	ok = true
	return nil
}
