package render

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

const spinnerInterval = 120 * time.Millisecond

// startSpinner animates frames followed by text on the current line of w until
// the returned function is called. Stopping clears the line and shows the
// cursor again.
func startSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	cursor.Hide()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", pterm.FgCyan.Sprint(frames[i%len(frames)]), text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(pterm.RemoveColorFromString(line)), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}
