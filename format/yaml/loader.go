// Package yaml loads YAML documents into flattened properties that
// remember where every value came from.
//
// Mappings flatten to dotted paths and sequences to bracketed
// indexes, so
//
//	server:
//	  hosts:
//	    - alpha
//	    - beta
//
// becomes server.hosts[0] and server.hosts[1]. Every value is a
// dedokoro.TrackedValue carrying the source name and the zero-based
// line and column where the value starts. Keys are never wrapped.
// Empty collections are kept as tracked leaves; null values flatten
// to the empty string.
//
// Plain scalars resolve with a deliberately narrow rule set: only
// the true/false spellings become booleans, so "yes", "no", "on" and
// "off" stay strings, and dates stay strings as well. Integers are
// resolved before floats. Quoted and block scalars are always
// strings.
//
// A multi-document stream yields one Properties per document in
// stream order, skipping documents that hold no data. Duplicate keys
// and recursive aliases are errors, and any error abandons the whole
// load.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yacchi/dedokoro"
	"github.com/yacchi/dedokoro/source"
)

// DocumentFunc receives each loaded document as both a plain nested
// map and flattened properties. Returning an error stops the load.
type DocumentFunc func(doc map[string]any, props *dedokoro.Properties) error

// Loader loads YAML documents from a source.
type Loader struct {
	src source.Source
}

// NewLoader returns a Loader reading from src.
func NewLoader(src source.Source) *Loader {
	return &Loader{src: src}
}

// Load flattens every document in the source. An error in any
// document abandons the whole load: no documents are returned.
func (l *Loader) Load(ctx context.Context) ([]*dedokoro.Properties, error) {
	var docs []*dedokoro.Properties
	err := l.Process(ctx, func(_ map[string]any, props *dedokoro.Properties) error {
		docs = append(docs, props)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Process loads the source and calls fn once per document, in stream
// order. Documents whose root is null or an empty string are
// skipped. Documents delivered before an error stay delivered.
func (l *Loader) Process(ctx context.Context, fn DocumentFunc) error {
	data, err := l.src.Load(ctx)
	if err != nil {
		return err
	}
	desc := l.src.Describe()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to parse YAML from %s: %w", desc, err)
		}
		root, err := newConstructor(desc).construct(&node, false)
		if err != nil {
			return fmt.Errorf("failed to load YAML from %s: %w", desc, err)
		}
		if skipDocument(root) {
			continue
		}
		if err := fn(nativeMap(root), flatten(root)); err != nil {
			return err
		}
	}
}

// skipDocument reports whether a constructed root holds no data. A
// bare document separator or a null root constructs to the empty
// string.
func skipDocument(root any) bool {
	if root == nil {
		return true
	}
	if tv, ok := root.(dedokoro.TrackedValue); ok {
		if s, ok := tv.Value.(string); ok && s == "" {
			return true
		}
	}
	return false
}

// Load flattens every YAML document in src.
func Load(ctx context.Context, src source.Source) ([]*dedokoro.Properties, error) {
	return NewLoader(src).Load(ctx)
}

var _ dedokoro.LoadFunc = Load
