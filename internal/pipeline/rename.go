package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Rename moves one file to its canonical name.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NoOp reports whether the file already has its canonical name.
func (r Rename) NoOp() bool {
	return r.From == r.To
}

// RenamePlan is an ordered set of renames within one directory.
type RenamePlan struct {
	entries []Rename
	targets map[string]string
}

func NewRenamePlan() *RenamePlan {
	return &RenamePlan{targets: make(map[string]string)}
}

// Add records a rename. Two files may not claim the same target.
func (p *RenamePlan) Add(from, to string) error {
	if other, ok := p.targets[to]; ok && other != from {
		return fmt.Errorf("rename conflict: %s and %s both map to %s", other, from, to)
	}
	p.targets[to] = from
	p.entries = append(p.entries, Rename{From: from, To: to})
	return nil
}

func (p *RenamePlan) Len() int {
	return len(p.entries)
}

// Entries returns the renames in the order they were added.
func (p *RenamePlan) Entries() []Rename {
	out := make([]Rename, len(p.entries))
	copy(out, p.entries)
	return out
}

// Pending returns the renames that change a name.
func (p *RenamePlan) Pending() []Rename {
	var out []Rename
	for _, r := range p.entries {
		if !r.NoOp() {
			out = append(out, r)
		}
	}
	return out
}

// tempPrefix marks files parked mid-rename. Hidden names are never loaded.
const tempPrefix = ".billdigest-"

// Check verifies the plan can run in dir: every source exists and every
// target is free or is itself about to be moved away by the plan.
func (p *RenamePlan) Check(dir string) error {
	pending := p.Pending()
	leaving := make(map[string]bool, len(pending))
	for _, r := range pending {
		leaving[r.From] = true
	}
	for _, r := range pending {
		if _, err := os.Lstat(filepath.Join(dir, r.From)); err != nil {
			return fmt.Errorf("rename %s: %w", r.From, err)
		}
		if leaving[r.To] {
			continue
		}
		if _, err := os.Lstat(filepath.Join(dir, r.To)); err == nil {
			return fmt.Errorf("rename %s: target %s already exists", r.From, r.To)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("rename %s: %w", r.From, err)
		}
	}
	return nil
}

// Apply renames the files in dir. Sources are first parked under temporary
// names so files may trade canonical names; no existing file is replaced.
func (p *RenamePlan) Apply(dir string, onRename func(Rename)) error {
	if err := p.Check(dir); err != nil {
		return err
	}
	pending := p.Pending()

	// Phase 1: park every source.
	parked := make([]string, len(pending))
	for i, r := range pending {
		parked[i] = fmt.Sprintf("%s%d-%s", tempPrefix, i, r.From)
		if err := os.Rename(filepath.Join(dir, r.From), filepath.Join(dir, parked[i])); err != nil {
			return fmt.Errorf("rename %s: %w", r.From, err)
		}
	}

	// Phase 2: move parked files to their targets.
	for i, r := range pending {
		dst := filepath.Join(dir, r.To)
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("rename %s: target %s already exists (parked as %s)", r.From, r.To, parked[i])
		}
		if err := os.Rename(filepath.Join(dir, parked[i]), dst); err != nil {
			return fmt.Errorf("rename %s (parked as %s): %w", r.From, parked[i], err)
		}
		if onRename != nil {
			onRename(r)
		}
	}
	return nil
}
