package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "y lf", input: "y\n", want: true},
		{name: "yes mixed case", input: "YeS\n", want: true},
		{name: "yes cr", input: "yes\r", want: true},
		{name: "empty defaults no", input: "\n", want: false},
		{name: "empty defaults yes", input: "\n", defaultYes: true, want: true},
		{name: "explicit no beats default", input: "n\n", defaultYes: true, want: false},
		{name: "anything else is no", input: "sure\n", want: false},
		{name: "eof is no", input: "", defaultYes: true, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got := confirm(strings.NewReader(tc.input), &out, "Delete PRJ-1?", tc.defaultYes)
			assert.Equal(t, tc.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Delete PRJ-1? ["))
		})
	}
}

func TestReadPromptLine_EOFWithoutNewline(t *testing.T) {
	t.Parallel()

	got, err := readPromptLine(strings.NewReader("yes"))
	assert.NoError(t, err)
	assert.Equal(t, "yes", got)
}
