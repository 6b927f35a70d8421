package risorhost

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/seqconv"
	"github.com/deepnoodle-ai/seqconv/smallvec"
	"github.com/risor-io/risor/object"
	"github.com/stretchr/testify/require"
)

func newTestBridge(t *testing.T) *seqconv.Bridge {
	t.Helper()
	b, err := NewBridge(context.Background(), seqconv.Options{})
	require.NoError(t, err)
	return b
}

func ints(values ...int64) *object.List {
	items := make([]object.Object, 0, len(values))
	for _, v := range values {
		items = append(items, object.NewInt(v))
	}
	return object.NewList(items)
}

func TestExtractList(t *testing.T) {
	b := newTestBridge(t)

	vec, err := seqconv.Extract[int64, [4]int64](b, ints(3, 1, 2), Int64)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1, 2}, vec.AsSlice())
	require.False(t, vec.Spilled())

	vec, err = seqconv.Extract[int64, [4]int64](b, ints(1, 2, 3, 4, 5, 6), Int64)
	require.NoError(t, err)
	require.Equal(t, 6, vec.Len())
	require.True(t, vec.Spilled())
}

func TestExtractRejections(t *testing.T) {
	b := newTestBridge(t)

	tests := []struct {
		name     string
		value    seqconv.Value
		wantType string
		wantIdx  int
	}{
		{
			name:     "string",
			value:    object.NewString("abc"),
			wantType: seqconv.ErrorTypeTypeMismatch,
			wantIdx:  -1,
		},
		{
			name:     "int",
			value:    object.NewInt(42),
			wantType: seqconv.ErrorTypeCapabilityMismatch,
			wantIdx:  -1,
		},
		{
			name:     "map",
			value:    object.NewMap(map[string]object.Object{"a": object.NewInt(1)}),
			wantType: seqconv.ErrorTypeCapabilityMismatch,
			wantIdx:  -1,
		},
		{
			name:     "nil object",
			value:    nil,
			wantType: seqconv.ErrorTypeCapabilityMismatch,
			wantIdx:  -1,
		},
		{
			name: "bad element",
			value: object.NewList([]object.Object{
				object.NewInt(1),
				object.NewString("two"),
				object.NewInt(3),
			}),
			wantType: seqconv.ErrorTypeElementFailed,
			wantIdx:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := seqconv.Extract[int, [8]int](b, tt.value, Int)
			require.Error(t, err)
			require.Equal(t, 0, vec.Len())

			convErr := seqconv.ClassifyError(err)
			require.NotNil(t, convErr)
			require.Equal(t, tt.wantType, convErr.Type)
			require.Equal(t, tt.wantIdx, convErr.Index)
		})
	}
}

func TestCapabilityMismatchNamesType(t *testing.T) {
	b := newTestBridge(t)
	_, err := seqconv.Extract[int, [8]int](b, object.NewInt(42), Int)
	require.EqualError(t, err, "capability_mismatch: 'int' object cannot be converted to 'Sequence'")
}

func TestElementErrorMessage(t *testing.T) {
	b := newTestBridge(t)
	list := object.NewList([]object.Object{object.NewInt(1), object.NewFloat(2.5)})
	_, err := seqconv.Extract[int, [8]int](b, list, Int)
	require.EqualError(t, err, "element_conversion_failed: item 1: expected int, but got float")
}

func TestNestedLists(t *testing.T) {
	b := newTestBridge(t)
	nested := object.NewList([]object.Object{ints(1, 2), ints(), ints(3)})

	inner := seqconv.VecExtractor[int64, [2]int64](b, Int64)
	vec, err := seqconv.Extract[smallvec.Vec[int64, [2]int64], [4]smallvec.Vec[int64, [2]int64]](b, nested, inner)
	require.NoError(t, err)
	require.Equal(t, 3, vec.Len())

	first := vec.Get(0)
	require.Equal(t, []int64{1, 2}, first.AsSlice())
	last := vec.Get(2)
	require.Equal(t, []int64{3}, last.AsSlice())

	out, err := seqconv.ToValue(b, &vec, seqconv.VecConverter[int64, [2]int64](b, Int64Converter))
	require.NoError(t, err)
	require.Equal(t, []any{[]any{int64(1), int64(2)}, []any{}, []any{int64(3)}}, ToGo(out.(object.Object)))
}

func TestNestedListStringRejected(t *testing.T) {
	b := newTestBridge(t)
	nested := object.NewList([]object.Object{ints(1), object.NewString("xy")})

	inner := seqconv.VecExtractor[int, [2]int](b, Int)
	_, err := seqconv.Extract[smallvec.Vec[int, [2]int], [2]smallvec.Vec[int, [2]int]](b, nested, inner)
	require.True(t, seqconv.MatchesErrorType(err, seqconv.ErrorTypeElementFailed))

	var convErr *seqconv.ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, 1, convErr.Index)
	require.Equal(t, seqconv.ErrorTypeTypeMismatch, seqconv.ClassifyError(convErr.Unwrap()).Type)
}

func TestRoundTrip(t *testing.T) {
	b := newTestBridge(t)

	for _, items := range [][]string{nil, {"a"}, {"a", "b", "c", "d", "e"}} {
		vec := smallvec.From[string, [2]string](items...)
		before := vec.Clone()

		out, err := seqconv.ToValue(b, &vec, StringConverter)
		require.NoError(t, err)
		require.True(t, smallvec.Equal(&before, &vec))

		back, err := seqconv.Extract[string, [2]string](b, out, String)
		require.NoError(t, err)
		require.True(t, smallvec.Equal(&vec, &back))
	}
}

func TestIntoValueConsumes(t *testing.T) {
	b := newTestBridge(t)
	vec := smallvec.From[float64, [2]float64](1.5, 2.5, 3.5)

	out, err := seqconv.IntoValue(b, &vec, Float64Converter)
	require.NoError(t, err)
	require.Equal(t, 0, vec.Len())

	list, ok := out.(*object.List)
	require.True(t, ok)
	require.Equal(t, []any{1.5, 2.5, 3.5}, ToGo(list))
}

func TestFloat64WidensInts(t *testing.T) {
	b := newTestBridge(t)
	list := object.NewList([]object.Object{object.NewInt(1), object.NewFloat(2.5)})
	vec, err := seqconv.Extract[float64, [2]float64](b, list, Float64)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2.5}, vec.AsSlice())
}

func TestCanceledContextStopsIteration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b, err := NewBridge(ctx, seqconv.Options{})
	require.NoError(t, err)

	_, err = seqconv.Extract[int64, [4]int64](b, ints(1, 2), Int64)
	require.True(t, seqconv.MatchesErrorType(err, seqconv.ErrorTypeIterationFailed))
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnyConverter(t *testing.T) {
	b := newTestBridge(t)
	vec := smallvec.From[any, [4]any](int64(1), "two", true)
	out, err := seqconv.ToValue(b, &vec, AnyConverter)
	require.NoError(t, err)

	back, err := seqconv.Extract[any, [4]any](b, out, Any)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), "two", true}, back.AsSlice())
}

// faultyList is a Risor list whose iterator raises an error object at
// failAt and whose length can be withheld.
type faultyList struct {
	*object.List
	failAt int
	cause  error
	noLen  bool
}

func (l *faultyList) Len() *object.Int {
	if l.noLen {
		return nil
	}
	return l.List.Len()
}

func (l *faultyList) Iter() object.Iterator {
	return &faultyIter{Iterator: l.List.Iter(), failAt: l.failAt, cause: l.cause}
}

type faultyIter struct {
	object.Iterator
	pos    int
	failAt int
	cause  error
}

func (it *faultyIter) Next(ctx context.Context) (object.Object, bool) {
	if it.pos == it.failAt {
		return object.NewError(it.cause), true
	}
	it.pos++
	return it.Iterator.Next(ctx)
}

func TestIteratorErrors(t *testing.T) {
	b := newTestBridge(t)
	cause := errors.New("host blew up")

	tests := []struct {
		name    string
		list    *faultyList
		want    []int64
		wantIdx int
	}{
		{
			name:    "error first",
			list:    &faultyList{List: ints(1, 2, 3), failAt: 0, cause: cause},
			wantIdx: 0,
		},
		{
			name:    "error midway",
			list:    &faultyList{List: ints(1, 2, 3), failAt: 1, cause: cause},
			wantIdx: 1,
		},
		{
			name: "length unavailable",
			list: &faultyList{List: ints(1, 2, 3), failAt: -1, noLen: true},
			want: []int64{1, 2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := seqconv.Extract[int64, [2]int64](b, tt.list, Int64)
			if tt.want != nil {
				require.NoError(t, err)
				require.Equal(t, tt.want, vec.AsSlice())
				return
			}
			require.Equal(t, 0, vec.Len())
			require.ErrorIs(t, err, cause)
			require.True(t, seqconv.IsTraversalError(err))

			convErr := seqconv.ClassifyError(err)
			require.NotNil(t, convErr)
			require.Equal(t, seqconv.ErrorTypeIterationFailed, convErr.Type)
			require.Equal(t, tt.wantIdx, convErr.Index)
		})
	}
}

func TestSequenceLenUnavailable(t *testing.T) {
	seq, ok := New(context.Background()).Sequence(&faultyList{List: ints(1), noLen: true})
	require.True(t, ok)
	_, err := seq.Len()
	require.EqualError(t, err, "length unavailable")

	seq, ok = New(context.Background()).Sequence(ints(1, 2))
	require.True(t, ok)
	n, err := seq.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
