// Package gohost connects seqconv to plain Go values, such as the results of
// expr-lang expressions or decoded JSON and YAML documents.
//
// Values whose kind is string are text. Slices and arrays are sequences.
package gohost

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deepnoodle-ai/seqconv"
)

var errUntypedNil = errors.New("untyped nil has no kind")

// Host implements seqconv.Host for Go values.
type Host struct{}

// New returns a Host.
func New() *Host {
	return &Host{}
}

// NewBridge is a shortcut for a seqconv.Bridge over a Go value host.
func NewBridge(opts seqconv.Options) (*seqconv.Bridge, error) {
	opts.Host = New()
	return seqconv.NewBridge(opts)
}

func (h *Host) IsText(v seqconv.Value) (bool, error) {
	if v == nil {
		return false, errUntypedNil
	}
	return reflect.ValueOf(v).Kind() == reflect.String, nil
}

func (h *Host) Sequence(v seqconv.Value) (seqconv.Sequence, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return &sequence{rv: rv}, true
	}
	return nil, false
}

func (h *Host) TypeName(v seqconv.Value) string {
	return fmt.Sprintf("%T", v)
}

func (h *Host) NewList(items []seqconv.Value) (seqconv.Value, error) {
	list := make([]any, len(items))
	for i, item := range items {
		list[i] = item
	}
	return list, nil
}

type sequence struct {
	rv reflect.Value
}

func (s *sequence) Len() (int, error) {
	return s.rv.Len(), nil
}

func (s *sequence) Iter() (seqconv.Iterator, error) {
	return &iterator{rv: s.rv}, nil
}

type iterator struct {
	rv  reflect.Value
	pos int
}

func (it *iterator) Next() (seqconv.Value, bool, error) {
	if it.pos >= it.rv.Len() {
		return nil, false, nil
	}
	item := it.rv.Index(it.pos)
	it.pos++
	if !item.CanInterface() {
		return nil, false, fmt.Errorf("element %d is not accessible", it.pos-1)
	}
	return item.Interface(), true, nil
}
