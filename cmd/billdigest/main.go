// Command billdigest classifies one month of payment confirmations, writes
// the summary, renames the files and optionally mails them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/dgallion1/billdigest/internal/config"
	"github.com/dgallion1/billdigest/internal/mail"
	"github.com/dgallion1/billdigest/internal/pipeline"
	"github.com/dgallion1/billdigest/internal/render"
)

var version = "dev"

const usage = `usage: billdigest [-send] [-dry-run] [-v] MMYYYY

Processes the confirmations in $BILLDIGEST_DIRECTORY/MMYYYY.

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("billdigest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	send := fs.Bool("send", false, "deliver the mail through Resend")
	dryRun := fs.Bool("dry-run", false, "print the summary and rename plan without touching files")
	verbose := fs.Bool("v", false, "debug logging")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *showVersion {
		fmt.Fprintln(stdout, "billdigest", version)
		return 0
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	target, err := bill.ParseTarget(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}
	writer, err := render.ForFormat(cfg.SummaryFormat)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	var sender pipeline.Sender
	if *send && !*dryRun {
		if err := cfg.ValidateSend(); err != nil {
			log.Error("invalid configuration", "error", err)
			return 1
		}
		sender = mail.NewResendSender(cfg.ResendAPIKey, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg, writer, sender, log)
	report, err := runner.Run(ctx, target, pipeline.RunOptions{DryRun: *dryRun, Send: *send})
	if err != nil {
		logFailure(log, err)
		return 1
	}

	printReport(stdout, report)
	return 0
}

func logFailure(log *slog.Logger, err error) {
	var de *bill.DocumentError
	switch {
	case errors.As(err, &de):
		log.Error("batch aborted", "file", de.Filename, "error", err)
	case errors.Is(err, bill.ErrNoDocumentsFound):
		log.Error("nothing to do", "error", err)
	default:
		log.Error("run failed", "error", err)
	}
}

func printReport(w io.Writer, r *pipeline.Report) {
	fmt.Fprintln(w, r.Summary.Markdown())
	fmt.Fprintln(w)

	if r.DryRun {
		fmt.Fprintln(w, "rename plan:")
		for _, rn := range r.Renames {
			if rn.NoOp() {
				fmt.Fprintf(w, "  %s (unchanged)\n", rn.From)
				continue
			}
			fmt.Fprintf(w, "  %s -> %s\n", rn.From, rn.To)
		}
		for _, name := range r.Skipped {
			fmt.Fprintf(w, "  %s (skipped)\n", name)
		}
		return
	}

	if r.Proposal != nil {
		p := r.Proposal
		fmt.Fprintf(w, "From: %s\nTo: %s\nSubject: %s\n\n%s\n\n", p.From, p.To, p.Subject, p.Body)
		for _, a := range p.Attachments {
			fmt.Fprintf(w, "  attach %s\n", a)
		}
	}
	if r.MessageID != "" {
		fmt.Fprintf(w, "sent, id %s\n", r.MessageID)
	} else {
		fmt.Fprintln(w, "not sent (use -send to deliver)")
	}
}
