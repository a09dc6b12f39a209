package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vitae/internal/domain"
)

func TestEnumFlag_Set(t *testing.T) {
	var align domain.Align
	f := alignFlag(&align)

	require.NoError(t, f.Set(" Center "))
	assert.Equal(t, domain.AlignCenter, align)
	assert.Equal(t, "center", f.String())
	assert.Equal(t, "align", f.Type())

	err := f.Set("justify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left, center, right")
	assert.Equal(t, domain.AlignCenter, align, "a rejected value leaves the target alone")
}

func TestChanged(t *testing.T) {
	var (
		name string
		size int
	)
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().StringVar(&name, "name", "", "")
	cmd.Flags().IntVar(&size, "size", 0, "")
	require.NoError(t, cmd.ParseFlags([]string{"--size", "0"}))

	assert.Nil(t, changed(cmd, "name", name))
	got := changed(cmd, "size", size)
	require.NotNil(t, got, "an explicit zero still counts")
	assert.Equal(t, 0, *got)
}
