package arith

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theanuradha/parboiled"
)

func TestBuild_EvaluatesExpression(t *testing.T) {
	start, err := Build()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  int
	}{
		{"1+2", 3},
		{"2*3+4", 10},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-2-3", 5},
		{"100", 100},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, diag, err := parboiled.Parse(start, tt.input)
			require.NoError(t, err)
			require.Nil(t, diag, "unexpected failure for %q", tt.input)
			require.Len(t, res.Values, 1)
			require.Equal(t, tt.want, res.Values[0])
		})
	}
}

func TestBuild_ReportsDiagnosticOnInvalidInput(t *testing.T) {
	start, err := Build()
	require.NoError(t, err)

	_, diag, err := parboiled.Parse(start, "1+")
	require.NoError(t, err)
	require.NotNil(t, diag)
}
