package gohost

import (
	"testing"

	"github.com/deepnoodle-ai/seqconv"
	"github.com/stretchr/testify/require"
)

func TestEngineExtract(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		env         map[string]any
		want        []string
		wantErrType string
	}{
		{
			name: "array literal",
			code: `["a", "b"]`,
			want: []string{"a", "b"},
		},
		{
			name: "env variable",
			code: `names`,
			env:  map[string]any{"names": []string{"x", "y", "z"}},
			want: []string{"x", "y", "z"},
		},
		{
			name: "map over env",
			code: `map(names, upper(#))`,
			env:  map[string]any{"names": []string{"x", "y"}},
			want: []string{"X", "Y"},
		},
		{
			name:        "string result",
			code:        `"abc"`,
			wantErrType: seqconv.ErrorTypeTypeMismatch,
		},
		{
			name:        "number result",
			code:        `1 + 2`,
			wantErrType: seqconv.ErrorTypeCapabilityMismatch,
		},
	}

	b := newTestBridge(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine(tt.env).Eval(tt.code)
			require.NoError(t, err)

			vec, err := seqconv.Extract[string, [2]string](b, result, String)
			if tt.wantErrType != "" {
				require.True(t, seqconv.MatchesErrorType(err, tt.wantErrType))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, vec.AsSlice())
		})
	}
}

func TestEngineCompileError(t *testing.T) {
	_, err := NewEngine(nil).Compile("[1, 2")
	require.Error(t, err)
}
