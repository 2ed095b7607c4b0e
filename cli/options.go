package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"youtube2mp3/model"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

// ErrUsage marks invalid or conflicting command line arguments
var ErrUsage = errors.New("usage error")

// Options holds everything read from the command line
type Options struct {
	URL          string
	File         string
	Playlist     bool
	Output       string
	Threads      int
	YouTubeOnly  bool
	SkipArchived bool
	Install      bool
	NoColor      bool
	JSONLogs     bool
	Help         bool
}

// Settings returns the job settings shared by every dispatched URL
func (o Options) Settings() model.Settings {
	return model.Settings{OutputDir: o.Output, Playlist: o.Playlist}
}

func newFlagSet(name string, o *Options, defaultThreads int) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&o.URL, "url", "u", "", "Specify a youtube url")
	fs.StringVarP(&o.File, "file", "f", "", "Specify a file that contains youtube urls")
	fs.BoolVarP(&o.Playlist, "playlist", "p", false, "Download playlists")
	fs.StringVarP(&o.Output, "output", "o", ".", "Specify a download directory")
	fs.IntVarP(&o.Threads, "threads", "t", defaultThreads, "Maximum parallel downloads (0 = one per url)")
	fs.BoolVar(&o.YouTubeOnly, "youtube-only", false, "Skip urls that are not youtube links")
	fs.BoolVar(&o.SkipArchived, "skip-archived", false, "Skip urls already recorded as converted")
	fs.BoolVar(&o.Install, "install", false, "Download yt-dlp and ffmpeg before converting")
	fs.BoolVar(&o.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&o.JSONLogs, "json", false, "Emit logs as json")
	fs.BoolVarP(&o.Help, "help", "h", false, "Show this help message")

	return fs
}

// Parse reads args into Options. Usage text is written to out.
// It returns pflag.ErrHelp when help was requested and wraps ErrUsage for any
// other argument problem.
func Parse(name string, args []string, out io.Writer, defaultThreads int) (Options, error) {
	var o Options
	fs := newFlagSet(name, &o, defaultThreads)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(out, name, fs) }

	if err := fs.Parse(args); err != nil {
		return o, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if o.Help {
		fs.Usage()
		return o, pflag.ErrHelp
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}
	if err := Validate(o); err != nil {
		return o, err
	}
	return o, nil
}

// Validate checks flag combinations and the paths they reference
func Validate(o Options) error {
	switch {
	case o.URL != "" && o.File != "":
		return fmt.Errorf("%w: argument -f/--file not allowed with argument -u/--url", ErrUsage)
	case o.URL == "" && o.File == "":
		return fmt.Errorf("%w: one of the arguments -u/--url -f/--file is required", ErrUsage)
	case o.Threads < 0:
		return fmt.Errorf("%w: --threads must not be negative", ErrUsage)
	}

	if o.File != "" {
		if err := checkFile(o.File); err != nil {
			return err
		}
	}
	return checkDir(o.Output)
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: file does not exist: %s", ErrUsage, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: file is not readable: %s", ErrUsage, path)
	}
	return f.Close()
}

func checkDir(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: directory does not exist: %s", ErrUsage, path)
	}
	return nil
}

func printUsage(out io.Writer, name string, fs *pflag.FlagSet) {
	bold := color.New(color.Bold)
	red := color.New(color.Bold, color.FgRed)

	fmt.Fprintf(out, "%s%s%s %s\n\n", red.Sprint("you"), bold.Sprint("tube"), red.Sprint("2"), bold.Sprint("mp3: A simple youtube to mp3 converter."))
	fmt.Fprintf(out, "Usage: %s (-u URL | -f FILE) [-p] [-o DIR] [-t N]\n\n", name)
	fmt.Fprintln(out, bold.Sprint("arguments"))
	fmt.Fprint(out, fs.FlagUsages())
}
