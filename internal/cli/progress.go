package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// StartProgress shows a spinner with msg on w until the returned function is
// called. Nothing is shown when quiet is set or w is not a terminal file.
func StartProgress(w io.Writer, quiet bool, msg string) (stop func()) {
	f, ok := w.(*os.File)
	if quiet || !ok {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
