package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transdom/utils"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRateFileJSON(t *testing.T) {
	path := writeFile(t, "rates.json", `[
		{"zone":"uk_ireland","rates":[{"weight":2,"price":85378.48}]},
		{"zone":"europe","currency":"usd","unit":"lb","rates":[{"weight":1,"price":50}]}
	]`)

	cards, err := loadRateFile(path)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "UK_IRELAND", cards[0].Zone)
	assert.Equal(t, "NGN", cards[0].Currency)
	assert.Equal(t, "USD", cards[1].Currency)
	assert.Equal(t, "lb", cards[1].Unit)
}

func TestLoadRateFileYAML(t *testing.T) {
	path := writeFile(t, "rates.yaml", `
- zone: west_africa
  rates:
    - weight: 0.5
      price: 12000
    - weight: 1
      price: 18500.5
`)

	cards, err := loadRateFile(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "WEST_AFRICA", cards[0].Zone)
	require.Len(t, cards[0].Rates, 2)
	assert.Equal(t, 0.5, cards[0].Rates[0].Weight)
	assert.Equal(t, 18500.5, cards[0].Rates[1].Price)
}

func TestLoadRateFileErrors(t *testing.T) {
	_, err := loadRateFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = loadRateFile(writeFile(t, "empty.json", `[]`))
	assert.Error(t, err)

	_, err = loadRateFile(writeFile(t, "bad.json", `{"zone":`))
	assert.Error(t, err)

	_, err = loadRateFile(writeFile(t, "dup.json", `[{"zone":"EU","rates":[{"weight":1,"price":1},{"weight":1,"price":2}]}]`))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
