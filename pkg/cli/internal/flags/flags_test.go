package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice(t *testing.T) {
	t.Parallel()
	var s StringSlice
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&s, "sort", "")

	require.NoError(t, fs.Parse([]string{"--sort", "id,desc", "--sort", "title"}))

	assert.Equal(t, StringSlice{"id,desc", "title"}, s)
	assert.Equal(t, "id,desc,title", s.String())
}

func TestOptionalID(t *testing.T) {
	t.Parallel()
	var id OptionalID
	assert.Nil(t, id.Ptr())
	assert.Equal(t, "", id.String())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&id, "book-id", "")
	require.NoError(t, fs.Parse([]string{"--book-id", "7"}))

	require.NotNil(t, id.Ptr())
	assert.Equal(t, int64(7), *id.Ptr())
	assert.Equal(t, "7", id.String())

	var bad OptionalID
	assert.Error(t, bad.Set("zero"))
	assert.Error(t, bad.Set("0"))
	assert.False(t, bad.IsSet)
}
