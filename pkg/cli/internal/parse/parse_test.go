package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in         string
		delims     []rune
		key, value string
		ok         bool
	}{
		{"patronId=5", nil, "patronId", "5", true},
		{"a=b=c", nil, "a", "b=c", true},
		{"name:value", []rune{':'}, "name", "value", true},
		{"novalue", nil, "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := KeyValue(tt.in, tt.delims...)
		assert.Equal(t, tt.key, key, tt.in)
		assert.Equal(t, tt.value, value, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestCriteria(t *testing.T) {
	t.Parallel()

	got, err := Criteria([]string{"patronId=5", "inventoryId.equals = 7"})
	require.NoError(t, err)
	assert.Equal(t, "5", got.Get("patronId.equals"))
	assert.Equal(t, "7", got.Get("inventoryId.equals"))

	_, err = Criteria([]string{"=5"})
	assert.Error(t, err)
	_, err = Criteria([]string{"patronId"})
	assert.Error(t, err)
}

func TestID(t *testing.T) {
	t.Parallel()

	id, err := ID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := ID(bad)
		assert.Error(t, err, bad)
	}
}

func TestOptionalDate(t *testing.T) {
	t.Parallel()

	d, err := OptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = OptionalDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", d.String())

	_, err = OptionalDate("05/01/2024")
	assert.Error(t, err)
}

func TestSplitTrim(t *testing.T) {
	t.Parallel()
	assert.Nil(t, SplitTrim("", ","))
	assert.Equal(t, []string{"id,desc", "title"}, SplitTrim(" id,desc ; ; title", ";"))
}
