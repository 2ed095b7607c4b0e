package console

import (
	"fmt"
	"io"
	"sync"

	"youtube2mp3/model"
	"youtube2mp3/utils"

	"github.com/fatih/color"
)

const bufferSize = 64

// Console serializes every status line through one printer goroutine so
// messages from concurrent jobs never interleave mid-line
type Console struct {
	out   io.Writer
	lines chan string
	done  chan struct{}
	once  sync.Once

	bold   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	alert  *color.Color
}

// New starts the printer goroutine. Colors are stripped when colored is false.
func New(out io.Writer, colored bool) *Console {
	c := &Console{
		out:    out,
		lines:  make(chan string, bufferSize),
		done:   make(chan struct{}),
		bold:   color.New(color.Bold),
		green:  color.New(color.Bold, color.FgGreen),
		red:    color.New(color.Bold, color.FgRed),
		yellow: color.New(color.FgYellow),
		alert:  color.New(color.BgRed),
	}
	if !colored {
		for _, col := range []*color.Color{c.bold, c.green, c.red, c.yellow, c.alert} {
			col.DisableColor()
		}
	}

	go c.print()
	return c
}

func (c *Console) print() {
	defer close(c.done)
	for line := range c.lines {
		fmt.Fprintln(c.out, line)
	}
}

// Close flushes pending lines and stops the printer. Safe to call twice.
func (c *Console) Close() {
	c.once.Do(func() {
		close(c.lines)
		<-c.done
	})
}

func (c *Console) send(format string, args ...any) {
	c.lines <- fmt.Sprintf(format, args...)
}

// Banner reports the run mode before any job starts
func (c *Console) Banner(settings model.Settings, urlCount, workers int) {
	if settings.Playlist {
		c.send("%s Download playlist: %s", c.green.Sprint("[+]"), c.green.Sprint("ON"))
	} else {
		c.send("%s Download playlist: %s", c.red.Sprint("[+]"), c.red.Sprint("OFF"))
	}
	if workers > 0 {
		c.send("%s Parallel downloads: %s", c.green.Sprint("[+]"), c.green.Sprint(workers))
	} else {
		c.send("%s Parallel downloads: %s", c.green.Sprint("[+]"), c.green.Sprint("one per url"))
	}
	c.send("%s Output directory: %s", c.green.Sprint("[+]"), c.bold.Sprint(settings.OutputDir))
	if urlCount > 1 {
		c.send("%s %s urls detected!", c.green.Sprint("[+]"), c.green.Sprint(urlCount))
	}
}

// NoURLs reports a url file without any detectable links
func (c *Console) NoURLs(path string) {
	c.send("%s", c.alert.Sprintf("[!] No youtube urls detected in %s! Exiting...", path))
}

// Started implements dispatch.Reporter
func (c *Console) Started(job model.Job) {
	c.send("%s %s", c.bold.Sprint("[Starting]"), job.URL)
}

// Finished implements dispatch.Reporter
func (c *Console) Finished(o model.Outcome) {
	elapsed := utils.FormatElapsed(o.Elapsed)
	if o.Status == model.StatusFailed {
		c.send("%s %s (%s): %v", c.red.Sprint("[Error]"), o.Job.URL, elapsed, o.Err)
		return
	}
	if len(o.Files) == 0 {
		c.send("%s%s%s %s (%s)", c.bold.Sprint("["), c.green.Sprint("Downloaded"), c.bold.Sprint("]"), o.Job.URL, elapsed)
		return
	}
	for _, f := range o.Files {
		c.send("%s%s%s %s (%s)", c.bold.Sprint("["), c.green.Sprint("Downloaded"), c.bold.Sprint("]"), utils.AudioTitle(f), elapsed)
	}
}

// Invalid implements dispatch.Reporter
func (c *Console) Invalid(raw string, err error) {
	c.send("%s %q skipped: %v", c.alert.Sprint("[x]"), raw, err)
}

// Archived implements dispatch.Reporter
func (c *Console) Archived(job model.Job) {
	c.send("%s %s already converted, skipping", c.yellow.Sprint("[Warning]"), job.URL)
}

// Summary prints the final counts of a run
func (c *Console) Summary(dispatched, succeeded, failed, skipped int) {
	c.send("")
	c.send("%s %d dispatched, %s, %s, %d skipped",
		c.bold.Sprint("[Done]"),
		dispatched,
		c.green.Sprintf("%d converted", succeeded),
		c.red.Sprintf("%d failed", failed),
		skipped,
	)
}

// Interrupted reports a run stopped by the user
func (c *Console) Interrupted() {
	c.send("%s", c.alert.Sprint("[!] Quitting..."))
}
