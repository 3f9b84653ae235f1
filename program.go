package glint

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/reoring/glint/codec"
	"github.com/reoring/glint/config"
	"github.com/reoring/glint/conflict"
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/input"
	"github.com/reoring/glint/logging"
	"github.com/reoring/glint/runtime"
	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// Options configures New. Zero fields take their defaults.
type Options struct {
	// Shares are definitions visible from every node. Nil selects
	// DefaultShares; an empty non-nil slice shares nothing.
	Shares []syntax.Node
	// Config defaults to config.Default().
	Config *config.Config
	// Logger defaults to a logger at Config.LogLevel writing to stderr.
	Logger *logging.Logger
	// Translator defaults to the dictionary of Config.Language.
	Translator i18n.Translator
}

// DefaultShares returns the Time and Key stream definitions, with Time
// sampling at cfg.TimeFrequency.
func DefaultShares(cfg config.Config) []syntax.Node {
	freq := cfg.TimeFrequency
	if freq <= 0 {
		freq = input.DefaultFrequency
	}
	return []syntax.Node{input.NewTimeDefinition(freq), input.KeyDefinition()}
}

// Program is a tree ready for checking and evaluation.
type Program struct {
	tree    *syntax.Tree
	types   *types.Context
	checker *conflict.Checker
	ev      *runtime.Evaluator
	cfg     config.Config
	log     *logging.Logger
	tr      i18n.Translator
	opts    Options
}

// New builds a Program for root, caching its parents.
func New(root syntax.Node, opts Options) (*Program, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shares := opts.Shares
	if shares == nil {
		shares = DefaultShares(cfg)
	}
	return newProgram(syntax.NewTree(root, shares...), cfg, opts)
}

func newProgram(tree *syntax.Tree, cfg config.Config, opts Options) (*Program, error) {
	if !tree.ParentsCached() {
		if err := tree.CacheParents(); err != nil {
			return nil, err
		}
	}
	log := opts.Logger
	if log == nil {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log = logging.New(level, os.Stderr)
	}
	tr := opts.Translator
	if tr == nil {
		tr = i18n.Dictionary(cfg.Language)
	}
	ev, err := runtime.NewEvaluator(tree, runtime.Options{
		MaxDepth:     cfg.MaxDepth,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}
	ctx := types.NewContext(tree)
	return &Program{
		tree:    tree,
		types:   ctx,
		checker: conflict.NewChecker(ctx),
		ev:      ev,
		cfg:     cfg,
		log:     log,
		tr:      tr,
		opts:    opts,
	}, nil
}

func (p *Program) Tree() *syntax.Tree               { return p.tree }
func (p *Program) Types() *types.Context            { return p.types }
func (p *Program) Evaluator() *runtime.Evaluator    { return p.ev }
func (p *Program) Config() config.Config            { return p.cfg }
func (p *Program) Translator() i18n.Translator      { return p.tr }
func (p *Program) TypeOf(n syntax.Node) syntax.Node { return p.types.TypeOf(n) }

// Conflicts lists every conflict in the root tree, children before parents.
func (p *Program) Conflicts() conflict.Conflicts {
	cs := p.checker.All()
	if len(cs) > 0 {
		p.log.Info(p.tr.Message("log.conflicts", map[string]string{"count": strconv.Itoa(len(cs))}))
	}
	return cs
}

// ConflictsOf lists the conflicts local to n.
func (p *Program) ConflictsOf(n syntax.Node) conflict.Conflicts { return p.checker.Conflicts(n) }

// Check returns the conflicts of the tree as an error, or nil.
func (p *Program) Check() error {
	if cs := p.Conflicts(); len(cs) > 0 {
		return cs
	}
	return nil
}

// Report explains the conflicts of the tree for JSON output.
func (p *Program) Report() codec.ConflictReport {
	return codec.NewConflictReport(p.tree, p.checker.All(), p.tr)
}

// PrintConflicts renders the conflicts of the tree for a terminal.
func (p *Program) PrintConflicts(w io.Writer) error {
	return logging.RenderConflicts(w, p.checker.All(), p.tr)
}

// Evaluate runs the root. Exceptions are values; the error is non-nil only
// when ctx ends first.
func (p *Program) Evaluate(ctx context.Context) (runtime.Value, error) {
	return p.ev.Evaluate(ctx)
}

// EncodeResult renders the value of the last finished evaluation as JSON.
func (p *Program) EncodeResult() ([]byte, error) { return codec.EncodeValue(p.ev.Result()) }

// Tick offers timestamp (milliseconds) to every stream and reports the new
// root value when any emitted.
func (p *Program) Tick(ctx context.Context, timestamp float64) (runtime.Value, bool, error) {
	return p.ev.Tick(ctx, timestamp)
}

// TickNode ticks only the stream created by n.
func (p *Program) TickNode(ctx context.Context, n syntax.Node, timestamp float64) (runtime.Value, bool, error) {
	return p.ev.TickStream(ctx, n, timestamp)
}

// RecordKey queues a key event on every Key stream; it reports how many
// streams received it.
func (p *Program) RecordKey(key string, down bool) int { return input.RecordKey(p.ev, key, down) }

// Release stops every stream of the program.
func (p *Program) Release() { p.ev.ReleaseStreams() }

// Clone returns a Program over a copy of the tree with original replaced.
// The copy starts without streams; p is unaffected.
func (p *Program) Clone(original, replacement syntax.Node) (*Program, error) {
	tree, err := p.tree.Clone(original, replacement)
	if err != nil {
		return nil, err
	}
	return newProgram(tree, p.cfg, p.opts)
}

// Slots describes the grammar of n with its current children.
func (p *Program) Slots(n syntax.Node) []syntax.Slot { return n.Grammar() }
