// Package risorhost connects seqconv to the Risor scripting runtime.
//
// Values are Risor objects (object.Object). Strings are the text type; any
// object.Container other than maps and sets is a sequence.
package risorhost

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/seqconv"
	"github.com/risor-io/risor/object"
)

var errNilObject = errors.New("nil risor object")

// Host implements seqconv.Host for Risor objects.
type Host struct {
	ctx context.Context
}

// New returns a Host whose iterations run under ctx.
func New(ctx context.Context) *Host {
	return &Host{ctx: ctx}
}

// NewBridge is a shortcut for a seqconv.Bridge over a Risor host.
func NewBridge(ctx context.Context, opts seqconv.Options) (*seqconv.Bridge, error) {
	opts.Host = New(ctx)
	return seqconv.NewBridge(opts)
}

func asObject(v seqconv.Value) (object.Object, error) {
	if v == nil {
		return nil, errNilObject
	}
	obj, ok := v.(object.Object)
	if !ok {
		return nil, fmt.Errorf("not a risor object: %T", v)
	}
	return obj, nil
}

func (h *Host) IsText(v seqconv.Value) (bool, error) {
	obj, err := asObject(v)
	if err != nil {
		return false, err
	}
	_, ok := obj.(*object.String)
	return ok, nil
}

func (h *Host) Sequence(v seqconv.Value) (seqconv.Sequence, bool) {
	obj, err := asObject(v)
	if err != nil {
		return nil, false
	}
	switch obj.(type) {
	case *object.Map, *object.Set:
		return nil, false
	}
	container, ok := obj.(object.Container)
	if !ok {
		return nil, false
	}
	return &sequence{ctx: h.ctx, container: container}, true
}

func (h *Host) TypeName(v seqconv.Value) string {
	obj, err := asObject(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(obj.Type())
}

func (h *Host) NewList(items []seqconv.Value) (seqconv.Value, error) {
	objs := make([]object.Object, 0, len(items))
	for i, item := range items {
		obj, err := asObject(item)
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i, err)
		}
		objs = append(objs, obj)
	}
	return object.NewList(objs), nil
}

type sequence struct {
	ctx       context.Context
	container object.Container
}

func (s *sequence) Len() (int, error) {
	n := s.container.Len()
	if n == nil {
		return 0, errors.New("length unavailable")
	}
	return int(n.Value()), nil
}

func (s *sequence) Iter() (seqconv.Iterator, error) {
	it := s.container.Iter()
	if it == nil {
		return nil, errors.New("object is not iterable")
	}
	return &iterator{ctx: s.ctx, it: it}, nil
}

type iterator struct {
	ctx context.Context
	it  object.Iterator
}

func (i *iterator) Next() (seqconv.Value, bool, error) {
	if err := i.ctx.Err(); err != nil {
		return nil, false, err
	}
	obj, ok := i.it.Next(i.ctx)
	if !ok {
		return nil, false, nil
	}
	if errObj, isErr := obj.(*object.Error); isErr {
		return nil, false, errObj.Value()
	}
	return obj, true, nil
}
