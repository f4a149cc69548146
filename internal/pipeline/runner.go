package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/dgallion1/billdigest/internal/classify"
	"github.com/dgallion1/billdigest/internal/config"
	"github.com/dgallion1/billdigest/internal/mail"
	"github.com/dgallion1/billdigest/internal/parser"
)

// SummaryWriter renders a summary into a document format.
type SummaryWriter interface {
	Render(w io.Writer, s Summary) error
	Ext() string
}

// Sender delivers a mail proposal and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, p mail.Proposal) (string, error)
}

// RunOptions selects how far Run goes.
type RunOptions struct {
	// DryRun stops after classification; nothing on disk changes.
	DryRun bool
	// Send delivers the proposal. Ignored on a dry run.
	Send bool
}

// Report describes what a run did.
type Report struct {
	RunID       string         `json:"run_id"`
	Target      bill.Period    `json:"target"`
	Dir         string         `json:"dir"`
	Lines       []string       `json:"lines"`
	Renames     []Rename       `json:"renames"`
	Skipped     []string       `json:"skipped,omitempty"`
	SummaryFile string         `json:"summary_file,omitempty"`
	Proposal    *mail.Proposal `json:"proposal,omitempty"`
	MessageID   string         `json:"message_id,omitempty"`
	DryRun      bool           `json:"dry_run"`

	Summary Summary `json:"-"`
}

// Runner drives one month's folder from listing to delivery.
type Runner struct {
	cfg        config.Config
	classifier *classify.Classifier
	writer     SummaryWriter
	sender     Sender
	log        *slog.Logger

	now func() time.Time
}

// NewRunner wires a runner. sender may be nil when nothing is ever sent.
func NewRunner(cfg config.Config, writer SummaryWriter, sender Sender, log *slog.Logger) *Runner {
	if cfg.ExtractConcurrency <= 0 {
		cfg.ExtractConcurrency = config.DefaultExtractConcurrency
	}
	return &Runner{
		cfg:        cfg,
		classifier: classify.Default(),
		writer:     writer,
		sender:     sender,
		log:        log,
		now:        time.Now,
	}
}

// Dir is the folder holding the confirmations for target.
func (r *Runner) Dir(target bill.Period) string {
	return filepath.Join(r.cfg.Directory, target.Compact())
}

// Load lists dir, keeps supported documents in modification-time order and
// extracts their text with bounded concurrency. Hidden files and the summary
// document of a previous run are never loaded.
func (r *Runner) Load(ctx context.Context, dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	type candidate struct {
		name    string
		modTime time.Time
	}
	var files []candidate
	for _, e := range entries {
		if !e.Type().IsRegular() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		if strings.HasPrefix(e.Name(), summaryPrefix) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, candidate{name: e.Name(), modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.Before(files[j].modTime)
	})

	docs := make([]Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.ExtractConcurrency)
	opts := parser.Options{FallbackPdftotext: r.cfg.PDFFallbackPdftotext}
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := extractFile(filepath.Join(dir, f.name), opts)
			if err != nil {
				return err
			}
			docs[i] = Document{Filename: f.name, Index: i, Lines: lines}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.log.Debug("loaded documents", "dir", dir, "count", len(docs))
	return docs, nil
}

func extractFile(path string, opts parser.Options) ([]string, error) {
	p, err := parser.ForContent(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	lines, err := p.Lines(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

// Preview loads and classifies the target folder without touching it.
func (r *Runner) Preview(ctx context.Context, target bill.Period) (*Batch, Summary, error) {
	dir := r.Dir(target)
	docs, err := r.Load(ctx, dir)
	if err != nil {
		return nil, Summary{}, err
	}
	batch, err := ProcessBatch(docs, BatchOptions{
		IssuerHeader: r.cfg.IssuerHeader,
		Classifier:   r.classifier,
		Log:          r.log,
	})
	if err != nil {
		return nil, Summary{}, err
	}
	return batch, NewSummary(r.cfg.SummaryTitle, target, r.now(), batch, r.cfg.RentAmount), nil
}

// Run processes the target month. Outside a dry run it writes the summary,
// renames the confirmations, then proposes (and optionally sends) the mail.
func (r *Runner) Run(ctx context.Context, target bill.Period, opts RunOptions) (*Report, error) {
	runID := uuid.NewString()
	log := r.log.With("run_id", runID, "target", target.String())
	dir := r.Dir(target)

	batch, summary, err := r.Preview(ctx, target)
	if err != nil {
		return nil, err
	}
	report := &Report{
		RunID:   runID,
		Target:  target,
		Dir:     dir,
		Lines:   summary.Lines,
		Renames: batch.Renames.Entries(),
		Skipped: batch.Skipped,
		DryRun:  opts.DryRun,
		Summary: summary,
	}
	if opts.DryRun {
		log.Info("dry run complete", "records", len(batch.Records), "pending_renames", len(batch.Renames.Pending()))
		return report, nil
	}

	// Renames are checked first so a plan that cannot run leaves no summary behind.
	if err := batch.Renames.Check(dir); err != nil {
		return nil, err
	}

	// Phase 1: summary document. Written before renaming so a render
	// failure leaves the folder untouched.
	name, err := r.writeSummary(dir, summary)
	if err != nil {
		return nil, err
	}
	report.SummaryFile = name
	log.Info("summary written", "file", name)

	// Phase 2: renames.
	err = batch.Renames.Apply(dir, func(rn Rename) {
		log.Info("renamed", "from", rn.From, "to", rn.To)
	})
	if err != nil {
		return nil, err
	}

	// Phase 3: mail.
	proposal, err := mail.Propose(
		mail.Address{Name: r.cfg.FromName, Address: r.cfg.FromAddress},
		mail.Address{Name: r.cfg.ToName, Address: r.cfg.ToAddress},
		summary.Heading(), r.cfg.MailBody, dir,
	)
	if err != nil {
		return nil, err
	}
	report.Proposal = &proposal

	if !opts.Send {
		return report, nil
	}
	if r.sender == nil {
		return nil, fmt.Errorf("send requested but no sender configured")
	}
	id, err := r.sender.Send(ctx, proposal)
	if err != nil {
		return nil, err
	}
	report.MessageID = id
	return report, nil
}

func (r *Runner) writeSummary(dir string, s Summary) (string, error) {
	name := s.Filename(r.writer.Ext())
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create summary: %w", err)
	}
	if err := r.writer.Render(f, s); err != nil {
		f.Close()
		return "", fmt.Errorf("render summary: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close summary: %w", err)
	}
	return name, nil
}
