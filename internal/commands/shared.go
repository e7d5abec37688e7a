package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/xinshuoliu/Finance/internal/auditlog"
	"github.com/xinshuoliu/Finance/internal/budget"
	"github.com/xinshuoliu/Finance/internal/categories"
	"github.com/xinshuoliu/Finance/internal/classify"
	"github.com/xinshuoliu/Finance/internal/config"
	"github.com/xinshuoliu/Finance/internal/filter"
	"github.com/xinshuoliu/Finance/internal/gitops"
	"github.com/xinshuoliu/Finance/internal/importer"
	"github.com/xinshuoliu/Finance/internal/model"
	"github.com/xinshuoliu/Finance/internal/recurring"
)

const flagDateFormat = "2006-01-02"

// workspace bundles the data dir, configuration, and the three stores for
// one command run. Each run reloads everything from disk, matching the
// one-pass-per-action model.
type workspace struct {
	dir        string
	cfg        *config.Config
	categories *categories.Store
	budgets    *budget.Store
	keywords   *recurring.Keywords
}

// openWorkspace resolves the data dir and loads config plus all stores.
// A missing finance.yaml falls back to defaults so the engine works in an
// uninitialized directory too.
func openWorkspace(flagDir string) *workspace {
	dir := config.ResolveDataDir(flagDir)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		cfg = config.Default()
	}

	return &workspace{
		dir:        dir,
		cfg:        cfg,
		categories: categories.Load(dir),
		budgets:    budget.Load(dir),
		keywords:   recurring.LoadKeywords(dir),
	}
}

// recordMutation appends an audit entry and, when configured, snapshots
// the data dir in git. The store mutation itself is already durable.
func (w *workspace) recordMutation(action auditlog.Action, category, details string) error {
	if err := auditlog.Append(w.dir, []auditlog.Entry{auditlog.NewEntry(action, category, details)}); err != nil {
		return fmt.Errorf("appending audit log: %w", err)
	}

	if w.cfg.Git.AutoCommit {
		msg := fmt.Sprintf("%s: %s", action, category)
		if _, err := gitops.Snapshot(w.dir, msg, w.cfg.Git.AuthorName, w.cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("snapshotting data dir: %w", err)
		}
	}
	return nil
}

// filterFlags are the shared transaction-window flags.
type filterFlags struct {
	from      string
	to        string
	search    string
	direction string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.search, "search", "", "substring filter on details")
	cmd.Flags().StringVar(&f.direction, "direction", "", "debit or credit (default both)")
}

func (f *filterFlags) criteria() (filter.Criteria, error) {
	var c filter.Criteria

	if f.from != "" {
		from, err := time.Parse(flagDateFormat, f.from)
		if err != nil {
			return c, fmt.Errorf("parsing --from %q: %w", f.from, err)
		}
		c.From = from
	}
	if f.to != "" {
		to, err := time.Parse(flagDateFormat, f.to)
		if err != nil {
			return c, fmt.Errorf("parsing --to %q: %w", f.to, err)
		}
		c.To = to
	}

	switch f.direction {
	case "":
	case "debit":
		c.Direction = model.Debit
	case "credit":
		c.Direction = model.Credit
	default:
		return c, fmt.Errorf("unknown --direction %q (want debit or credit)", f.direction)
	}

	c.Search = f.search
	return c, nil
}

// loadFile parses one export file, classifies against the workspace's
// category store, and applies the filter window.
func (w *workspace) loadFile(path, format string, flags *filterFlags) ([]model.Transaction, error) {
	p := importer.DefaultRegistry().Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	txns = classify.Apply(txns, w.categories)

	criteria, err := flags.criteria()
	if err != nil {
		return nil, err
	}
	return filter.Apply(txns, criteria), nil
}

// loadImportDir parses every CSV in <dataDir>/import/ and concatenates the
// results. Any file failing to parse aborts the whole load.
func (w *workspace) loadImportDir(format string, flags *filterFlags) ([]model.Transaction, []importer.FileInfo, error) {
	files, err := importer.Scan(w.dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no CSV files in %s", filepath.Join(w.dir, "import"))
	}

	var all []model.Transaction
	for _, fi := range files {
		txns, err := w.loadFile(fi.Path, format, flags)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, txns...)
	}
	return all, files, nil
}
