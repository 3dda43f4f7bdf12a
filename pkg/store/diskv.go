package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/planner/pkg/plan"
)

// NewDiskv stores one JSON document per entity at <basePath>/<kind>/<id>.
func NewDiskv(basePath string) (Persistence, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (plan.Entity, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	kind, id := splitKey(key)
	e, err := plan.Decode(kind, val)
	if err != nil {
		return nil, err
	}
	if e.Base().ID == "" {
		e.Base().ID = id
	}
	return e, nil
}

func (p *persistence) List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error) {
	if _, err := plan.New(kind); err != nil {
		return nil, err
	}
	all := make([]plan.Entity, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if k, _ := splitKey(key); k != kind {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan.Sort(all)
	return all, nil
}

func (p *persistence) Get(_ context.Context, kind plan.Kind, id string) (plan.Entity, error) {
	key := toKey(kind, id)
	if !p.d.Has(key) {
		return nil, notFound(kind, id)
	}
	return p.read(key)
}

func (p *persistence) Store(_ context.Context, e plan.Entity) error {
	if e.Base().ID == "" {
		return errors.New("store: entity id required")
	}
	data, err := plan.Encode(e)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(e.Kind(), e.Base().ID), data)
}

func (p *persistence) Delete(_ context.Context, kind plan.Kind, id string) error {
	key := toKey(kind, id)
	if !p.d.Has(key) {
		return notFound(kind, id)
	}
	return p.d.Erase(key)
}

const keySeparator = ":"

func keyToPathTransform(s string) *diskv.PathKey {
	kind, id := splitKey(s)
	return &diskv.PathKey{
		Path:     []string{string(kind)},
		FileName: id,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(pathKey.Path, keySeparator) + keySeparator + pathKey.FileName
}

// toKey makes `kind:id`
func toKey(kind plan.Kind, id string) string {
	return string(kind) + keySeparator + id
}

func splitKey(key string) (plan.Kind, string) {
	kind, id, ok := strings.Cut(key, keySeparator)
	if !ok {
		return "", key
	}
	return plan.Kind(kind), id
}
