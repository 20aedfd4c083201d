// Package spinner shows progress for long-running CLI steps such as uploads.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Interval between frames.
const Interval = 80 * time.Millisecond

// Start shows message on w until the returned stop func is called. On a
// terminal the message is animated and cleared on stop. Anywhere else it is
// printed once as a plain line.
func Start(w io.Writer, message string) (stop func()) {
	if !isTerminal(w) {
		fmt.Fprintln(w, message) //nolint:errcheck
		return func() {}
	}
	return animate(w, message, Interval)
}

func animate(w io.Writer, message string, interval time.Duration) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	var stopOnce sync.Once

	width := runewidth.StringWidth(message) + 2
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width)) //nolint:errcheck
				close(cleared)
				return
			case <-ticker.C:
			}
		}
	}()
	return func() {
		stopOnce.Do(func() { close(done) })
		<-cleared
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
