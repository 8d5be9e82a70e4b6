package collection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		" Hair Color": "hair_color",
		"Level (max)": "level__max_",
		"year":        "year",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestParseCSV(t *testing.T) {
	input := "\ufeffName,Hair Color,Active,Year\n" +
		"Caesar,black,true,-44\n" +
		"\n" +
		"Cleo,,false,-30\n" +
		",,,\n"

	rows, fields, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "hair_color", "active", "year"}, fields)
	require.Len(t, rows, 2)

	assert.Equal(t, map[string]any{
		"name":       "Caesar",
		"hair_color": "black",
		"active":     true,
		"year":       -44.0,
	}, rows[0])
	assert.Equal(t, map[string]any{
		"name":   "Cleo",
		"active": false,
		"year":   -30.0,
	}, rows[1])
}

func TestParseCSV_RaggedRows(t *testing.T) {
	rows, _, err := ParseCSV(strings.NewReader("a,b\n1\n2,3,4\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"a": 1.0}, rows[0])
	assert.Equal(t, map[string]any{"a": 2.0, "b": 3.0}, rows[1])
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	rows, fields, err := ParseCSV(strings.NewReader("name,color\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.Equal(t, []string{"name", "color"}, fields)
}

func TestParseCSV_Invalid(t *testing.T) {
	for name, input := range map[string]string{
		"empty":        "",
		"blank header": " , \n1,2\n",
		"bad quoting":  "name\n\"unterminated\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseCSV(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrInvalidCSV)
		})
	}
}
