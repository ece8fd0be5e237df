// Package main is the entry point for the inkwell command.
//
// inkwell loads files through the editing engine and reports what the
// loader detected, prints them syntax highlighted, or opens them in a
// read-only terminal viewer.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/logging"
	"github.com/dshills/inkwell/internal/renderer/highlight"
	"github.com/dshills/inkwell/internal/syntax"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	theme      string
	logLevel   string
	color      string
	info       bool
	highlight  bool
	view       bool
	watch      bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	log := cfg.Logger(os.Stderr)
	logging.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	p := &printer{
		out:  out,
		term: termenv.NewOutput(os.Stdout),
		lip:  newRenderer(os.Stdout, opts.color),
	}

	for _, path := range opts.files {
		if err := process(ctx, p, path, cfg, opts, log); err != nil {
			if errors.Is(err, context.Canceled) {
				return 0
			}
			out.Flush()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.theme, "theme", "", "Highlight theme (overrides the configuration)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.color, "color", "auto", "Color output (auto, always, never)")
	flag.BoolVar(&opts.info, "info", false, "Print detected file information")
	flag.BoolVar(&opts.highlight, "highlight", false, "Print the file syntax highlighted")
	flag.BoolVar(&opts.view, "view", false, "Open the file in the terminal viewer")
	flag.BoolVar(&opts.watch, "watch", false, "With -highlight, reprint when the configured theme changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inkwell - text engine inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkwell [options] files...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inkwell file.go                            Print detected file information\n")
		fmt.Fprintf(os.Stderr, "  inkwell -highlight -theme dracula file.go  Print highlighted\n")
		fmt.Fprintf(os.Stderr, "  inkwell -view file.go                      Browse in the terminal (q to quit)\n")
		fmt.Fprintf(os.Stderr, "  inkwell -c inkwell.toml -highlight -watch file.go\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("inkwell %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	switch opts.color {
	case "auto", "always", "never":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid color mode %q (must be auto, always, or never)\n", opts.color)
		os.Exit(1)
	}

	if opts.watch && (!opts.highlight || opts.configPath == "") {
		fmt.Fprintf(os.Stderr, "Error: -watch needs -highlight and -config\n")
		os.Exit(1)
	}

	opts.files = flag.Args()
	if len(opts.files) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if !opts.highlight && !opts.view {
		opts.info = true
	}
	return opts
}

// printer writes highlighted documents to the terminal.
type printer struct {
	out  *bufio.Writer
	term *termenv.Output
	lip  *lipgloss.Renderer
}

// newRenderer returns a lipgloss renderer for w. "auto" detects the color
// profile of w; "always" forces true color and "never" plain text.
func newRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func process(ctx context.Context, p *printer, path string, cfg *config.Config, opts options, log *logging.Logger) error {
	doc, err := engine.LoadFile(path, engine.WithConfig(cfg), engine.WithLogger(log))
	if err != nil {
		return err
	}

	if opts.info {
		printInfo(p.out, path, doc)
	}
	if !opts.highlight && !opts.view {
		return nil
	}

	syn := syntaxFor(path, doc)
	if !cfg.Highlight.Enabled {
		if !opts.view {
			_, err := io.WriteString(p.out, doc.Text())
			return err
		}
		syn = syntax.Default().Plain()
	}

	themeName := cfg.Highlight.Theme
	if opts.theme != "" {
		themeName = opts.theme
	}
	theme, err := highlight.LoadTheme(themeName)
	if err != nil {
		return err
	}

	cache := highlight.NewCache(syn, theme, highlight.WithLogger(log))
	if opts.view {
		if err := p.out.Flush(); err != nil {
			return err
		}
		return view(ctx, path, doc, cache, log)
	}
	if err := p.render(ctx, doc, cache); err != nil {
		return err
	}
	if opts.watch {
		return p.watch(ctx, opts.configPath, doc, cache, log)
	}
	return nil
}

func syntaxFor(path string, doc *engine.Document) syntax.Syntax {
	set := syntax.Default()
	if syn, err := set.Lookup(doc.FileInfo().SyntaxID); err == nil {
		return syn
	}
	return set.ForFile(path, lineText(doc.Rope(), 0))
}

// lineText returns line i of r without its terminator.
func lineText(r rope.Rope, i int) string {
	s := r.LineString(i)
	return s[:len(s)-rope.TrailingBreakLen(s)]
}

func printInfo(w io.Writer, path string, doc *engine.Document) {
	fi := doc.FileInfo()
	bom := "no"
	if len(fi.BOM) > 0 {
		bom = fmt.Sprintf("% x", fi.BOM)
	}
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  document:    %s\n", doc.ID())
	fmt.Fprintf(w, "  revision:    %s\n", doc.Revision())
	fmt.Fprintf(w, "  encoding:    %s\n", fi.Encoding)
	fmt.Fprintf(w, "  bom:         %s\n", bom)
	fmt.Fprintf(w, "  line ending: %s\n", fi.LineEnding.Name())
	fmt.Fprintf(w, "  indentation: %s\n", fi.Indentation)
	fmt.Fprintf(w, "  syntax:      %s\n", fi.SyntaxID)
	fmt.Fprintf(w, "  lines:       %d\n", doc.LineCount())
	fmt.Fprintf(w, "  chars:       %d\n", doc.Rope().LenChars())
}

// render brings the whole document up to date and writes it styled.
func (p *printer) render(ctx context.Context, doc *engine.Document, cache *highlight.Cache) error {
	text := doc.Rope()
	if err := cache.UpdateRange(ctx, text, 0, text.LenLines()-1, doc.TabWidth()); err != nil {
		return err
	}

	styles := make(map[highlight.Style]lipgloss.Style)
	for i := range text.LenLines() {
		runes := []rune(highlight.ExpandTabs(lineText(text, i), doc.TabWidth()))
		styled := cache.Line(i).Truncate(len(runes))
		for _, span := range styled {
			ls, ok := styles[span.Style]
			if !ok {
				ls = span.Style.Lipgloss(p.lip)
				styles[span.Style] = ls
			}
			p.out.WriteString(ls.Render(string(runes[span.Start:span.End])))
		}
		// lines that failed to parse have no spans
		p.out.WriteString(string(runes[styled.Len():]))
		p.out.WriteByte('\n')
	}
	return p.out.Flush()
}

// watch reprints the document each time the configuration file selects
// a different theme.
func (p *printer) watch(ctx context.Context, path string, doc *engine.Document, cache *highlight.Cache, log *logging.Logger) error {
	w, err := config.NewWatcher(path, config.WithWatcherLogger(log))
	if err != nil {
		return err
	}
	defer w.Close()

	changed := make(chan *highlight.Theme, 1)
	w.OnChange(func(cfg *config.Config) {
		theme, err := highlight.LoadTheme(cfg.Highlight.Theme)
		if err != nil {
			log.Warn().Err(err).Msg("theme not switched")
			return
		}
		offerLatest(changed, theme)
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case theme := <-changed:
			if theme == cache.Theme() {
				continue
			}
			cache.SetTheme(theme)
			p.term.ClearScreen()
			if err := p.render(ctx, doc, cache); err != nil {
				return err
			}
		}
	}
}

// offerLatest puts v in the one-slot channel ch, replacing a value that
// has not been received yet. It must not race with other senders.
func offerLatest[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
