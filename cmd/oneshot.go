package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"minkafka/internal/app"
	"minkafka/internal/formatting"
)

// withSpinner runs fn while showing a spinner on w.
func withSpinner(w io.Writer, suffix string, fn func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	fn()
}

// printAlerts writes the alerts raised so far without waiting for more.
func printAlerts(w io.Writer, s *app.Services) {
	f := formatting.NewFormatter(formatting.Options{Format: formatting.FormatTable, Color: !noColor})
	for {
		select {
		case alert := <-s.Alerts():
			fmt.Fprintln(w, f.FormatAlert(alert))
		default:
			return
		}
	}
}
