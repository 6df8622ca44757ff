package logging

import (
	"io"

	"go.uber.org/multierr"
)

// teeWriter mirrors log lines to all its outputs. A line counts as written
// when at least one output took it, so a broken log file does not stop the
// stdout copy; the output errors are still reported, combined.
type teeWriter struct {
	outputs []io.Writer
}

func newTeeWriter(outputs ...io.Writer) *teeWriter {
	return &teeWriter{outputs: outputs}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	var err error
	written := false
	for _, out := range t.outputs {
		if _, werr := out.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		written = true
	}
	if !written {
		return 0, err
	}
	return len(p), err
}
