package highlight

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/iw2rmb/hexed/rangeset"
)

// Stage fixes where a highlighter runs relative to the others.
type Stage uint8

const (
	StageByteClass Stage = iota
	StageSearch
	StageEdits
	StageDiff
	StageCursor

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageByteClass:
		return "byte-class"
	case StageSearch:
		return "search"
	case StageEdits:
		return "edits"
	case StageDiff:
		return "diff"
	case StageCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

type Option func(*Pipeline)

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// Pipeline runs highlighters stage by stage and overlays their output.
type Pipeline struct {
	stages [stageCount][]Highlighter
	log    *zap.Logger
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Add appends h to stage. Within a stage highlighters run in the order added.
func (p *Pipeline) Add(stage Stage, h Highlighter) {
	if stage >= stageCount || h == nil {
		return
	}
	p.stages[stage] = append(p.stages[stage], h)
}

// Len returns the number of registered highlighters.
func (p *Pipeline) Len() int {
	n := 0
	for _, hs := range p.stages {
		n += len(hs)
	}
	return n
}

// Render returns the composed spans for iv in ascending order. A highlighter
// that fails contributes nothing to this call.
func (p *Pipeline) Render(iv rangeset.Interval, ctx Context) []Span {
	if !iv.Valid() {
		return nil
	}

	acc := rangeset.NewFunc(sameSpan)
	for stage, hs := range p.stages {
		for i, h := range hs {
			spans, err := h.Annotate(iv, ctx)
			if err != nil {
				p.log.Debug("highlighter failed",
					zap.Stringer("stage", Stage(stage)),
					zap.Int("index", i),
					zap.Stringer("interval", iv),
					zap.Error(err),
				)
				continue
			}
			for _, sp := range spans {
				clipped, ok := sp.Interval.Intersect(iv)
				if !ok {
					continue
				}
				acc.Insert(clipped, sp.StyleSpan)
			}
		}
	}

	entries := acc.All()
	if len(entries) == 0 {
		return nil
	}
	out := make([]Span, len(entries))
	for i, e := range entries {
		out[i] = Span{Interval: e.Interval, StyleSpan: e.Value}
	}
	return out
}

// sameSpan reports whether touching spans may be merged. Kind alone is not
// enough: custom highlighters share kinds with different styles.
func sameSpan(a, b StyleSpan) bool {
	return a.Kind == b.Kind && reflect.DeepEqual(a.Style, b.Style)
}
