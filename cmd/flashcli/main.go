package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"flashmind/internal/client"
	"flashmind/internal/logger"
)

type options struct {
	server   string
	pdfPath  string
	text     string
	reveal   bool
	copyAll  bool
	logLevel string
}

func main() {
	var opts options
	flag.StringVar(&opts.server, "server", envOr("FLASHMIND_SERVER", "http://localhost:3000"), "flashcard server base URL")
	flag.StringVar(&opts.pdfPath, "pdf", "", "PDF file to upload")
	flag.StringVar(&opts.text, "text", "", `notes to send; "-" reads stdin`)
	flag.BoolVar(&opts.reveal, "reveal", false, "print answers along with questions")
	flag.BoolVar(&opts.copyAll, "copy", false, "print every card as a Card/Q/A transcript for pasting")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, client.ErrNothingToSubmit) {
			flag.Usage()
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	log := logger.NewWithWriter(stderr, opts.logLevel)
	session := client.NewSession(client.NewHTTPClient(opts.server, nil))

	text := opts.text
	if text == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}
	session.SetText(text)

	if opts.pdfPath != "" {
		data, err := os.ReadFile(opts.pdfPath)
		if err != nil {
			return fmt.Errorf("read pdf: %w", err)
		}
		session.SetFile(filepath.Base(opts.pdfPath), data)
	}

	log.Debug("submitting", "server", opts.server, "pdf", opts.pdfPath, "text_chars", len(text))
	err := session.Submit(ctx)
	if n, ok := session.Notice(); ok {
		fmt.Fprintf(stderr, "[%s] %s\n", n.Kind, n.Message)
	}
	if err != nil {
		return err
	}

	if opts.copyAll {
		_, err := fmt.Fprintln(stdout, session.Transcript())
		return err
	}

	if opts.reveal {
		for i := range session.Cards() {
			if err := session.Toggle(i); err != nil {
				return err
			}
		}
	}
	return printCards(stdout, session.Cards())
}

func printCards(w io.Writer, cards []client.Card) error {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Card %d\nQ: %s\n", i+1, c.Question)
		if c.Revealed {
			fmt.Fprintf(&b, "A: %s\n", c.Answer)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
