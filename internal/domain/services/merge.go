package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/licensure/internal/domain/entities"
	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
)

// MergeEngine combines several CycloneDX documents into one
type MergeEngine struct {
	serial func() string
	now    func() time.Time
}

// MergeOption configures a MergeEngine
type MergeOption func(*MergeEngine)

// WithSerialGenerator overrides the serial number generator
func WithSerialGenerator(fn func() string) MergeOption {
	return func(m *MergeEngine) {
		m.serial = fn
	}
}

// WithClock overrides the clock used for metadata.timestamp
func WithClock(fn func() time.Time) MergeOption {
	return func(m *MergeEngine) {
		m.now = fn
	}
}

// NewMergeEngine creates a merge engine with a random serial and the wall clock
func NewMergeEngine(opts ...MergeOption) *MergeEngine {
	m := &MergeEngine{
		serial: func() string { return "urn:uuid:" + uuid.NewString() },
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge deduplicates components by identity key (first occurrence wins) and
// unions dependency edges by ref. Metadata comes from the first document.
func (m *MergeEngine) Merge(docs []*entities.Document, project entities.ProjectIdentity) (*entities.Document, error) {
	if len(docs) == 0 {
		return nil, &domainerrors.InputError{Index: -1, Err: domainerrors.ErrNoInput}
	}
	for i, doc := range docs {
		if doc == nil {
			return nil, domainerrors.NewInputError(i, "", fmt.Errorf("document is nil"))
		}
	}

	components := mergeComponents(docs)
	dependencies := mergeDependencies(docs)

	metadata := docs[0].Metadata.Clone()
	metadata.Component = entities.NewProjectComponent(project)
	metadata.Timestamp = m.now().UTC().Format(time.RFC3339)

	return &entities.Document{
		Schema:       entities.BOMSchemaURL,
		BOMFormat:    entities.BOMFormat,
		SpecVersion:  entities.SpecVersion,
		SerialNumber: m.serial(),
		Version:      1,
		Metadata:     metadata,
		Components:   components.list,
		Dependencies: dependencies.list(),
	}, nil
}

// componentSet accumulates components in first-seen order
type componentSet struct {
	seen map[string]struct{}
	list []entities.Component
}

func mergeComponents(docs []*entities.Document) componentSet {
	acc := componentSet{seen: make(map[string]struct{}), list: []entities.Component{}}
	for _, doc := range docs {
		for _, c := range doc.Components {
			key := c.Key()
			if _, dup := acc.seen[key]; dup {
				continue
			}
			acc.seen[key] = struct{}{}
			acc.list = append(acc.list, c)
		}
	}
	return acc
}

// edgeSet accumulates dependency edges keyed by ref
type edgeSet struct {
	order []string
	deps  map[string][]string
	seen  map[string]map[string]struct{}
}

func mergeDependencies(docs []*entities.Document) edgeSet {
	acc := edgeSet{
		deps: make(map[string][]string),
		seen: make(map[string]map[string]struct{}),
	}
	for _, doc := range docs {
		for _, dep := range doc.Dependencies {
			if dep.Ref == "" {
				continue
			}
			targets, ok := acc.seen[dep.Ref]
			if !ok {
				targets = make(map[string]struct{})
				acc.seen[dep.Ref] = targets
				acc.order = append(acc.order, dep.Ref)
			}
			for _, target := range dep.DependsOn {
				if _, dup := targets[target]; dup {
					continue
				}
				targets[target] = struct{}{}
				acc.deps[dep.Ref] = append(acc.deps[dep.Ref], target)
			}
		}
	}
	return acc
}

func (e edgeSet) list() []entities.Dependency {
	out := make([]entities.Dependency, 0, len(e.order))
	for _, ref := range e.order {
		out = append(out, entities.Dependency{Ref: ref, DependsOn: e.deps[ref]})
	}
	return out
}
