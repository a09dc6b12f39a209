package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShellArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: "   ", want: nil},
		{input: "section list", want: []string{"section", "list"}},
		{input: "  item   add\tExperience ", want: []string{"item", "add", "Experience"}},
		{input: `doc add "Backend CV"`, want: []string{"doc", "add", "Backend CV"}},
		{input: `doc add 'It''s'`, want: []string{"doc", "add", "Its"}},
		{input: `item update x --title ""`, want: []string{"item", "update", "x", "--title", ""}},
		{input: `field add --value "say \"hi\""`, want: []string{"field", "add", "--value", `say "hi"`}},
		{input: `field add --value 'a\b'`, want: []string{"field", "add", "--value", `a\b`}},
		{input: `doc add Backend\ CV`, want: []string{"doc", "add", "Backend CV"}},
		{input: `a"b c"d`, want: []string{"ab cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := splitShellArgs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitShellArgs_Errors(t *testing.T) {
	_, err := splitShellArgs(`doc add "Backend CV`)
	assert.ErrorIs(t, err, errUnterminatedQuote)

	_, err = splitShellArgs(`doc add 'Backend`)
	assert.ErrorIs(t, err, errUnterminatedQuote)

	_, err = splitShellArgs(`doc add Backend\`)
	assert.ErrorIs(t, err, errUnterminatedEscape)
}
