package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBars_YahooExport(t *testing.T) {
	data := `Date,Open,High,Low,Close,Adj Close,Volume
2015-01-04,281.145996,287.230011,257.612000,264.195007,264.195007,55629100
2015-01-03,314.846008,315.149994,281.082001,281.082001,281.082001,33054400
2015-01-05,265.084015,278.341003,265.084015,274.473999,274.473999,43962800
2015-01-06,null,null,null,null,null,null
`
	bars, err := readBars(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, time.Date(2015, 1, 3, 0, 0, 0, 0, time.UTC), bars[0].Date, "rows are sorted")
	assert.Equal(t, time.Sunday, bars[1].Date.Weekday())
	assert.Equal(t, 281.145996, bars[1].Open)
	assert.Equal(t, 264.195007, bars[1].Close)
}

func TestReadBars_Errors(t *testing.T) {
	_, err := readBars(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoData)

	_, err = readBars(strings.NewReader("date,open,high,low,close\n"))
	assert.ErrorContains(t, err, `missing column "volume"`)

	_, err = readBars(strings.NewReader("date,open,high,low,close,volume\n04/01/2015,1,1,1,1,1\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestCSVFetcher_ClipsRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	data := "date,open,high,low,close,volume\n" +
		"2022-12-30,1,1,1,1,1\n" +
		"2022-12-31,2,2,2,2,2\n" +
		"2023-01-01,3,3,3,3,3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	f := NewCSVFetcher(path)
	assert.Equal(t, "csv", f.Name())

	bars, err := f.FetchDailyRange(context.Background(), "BTC-USD",
		time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 2.0, bars[0].Open)

	_, err = NewCSVFetcher(filepath.Join(t.TempDir(), "missing.csv")).FetchDailyRange(context.Background(), "", time.Time{}, time.Now())
	assert.ErrorContains(t, err, "open bars file")
}
