package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"WeekdayCycle/internal/model"
)

// CSVFetcher replays daily bars from a local CSV file with a header row
// containing date, open, high, low, close and volume columns (any order, any case).
// Yahoo's own CSV export ("Date,Open,High,Low,Close,Adj Close,Volume") loads as-is.
type CSVFetcher struct {
	Path string
}

func NewCSVFetcher(path string) *CSVFetcher { return &CSVFetcher{Path: path} }

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchDailyRange(_ context.Context, _ string, start, end time.Time) ([]model.PriceBar, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer file.Close()

	bars, err := readBars(file)
	if err != nil {
		return nil, fmt.Errorf("read bars file %s: %w", f.Path, err)
	}
	return clipRange(bars, start, end), nil
}

var barColumns = []string{"date", "open", "high", "low", "close", "volume"}

func readBars(r io.Reader) ([]model.PriceBar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoData
		}
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make([]int, len(barColumns))
	for i, name := range barColumns {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = c
	}

	var bars []model.PriceBar
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		date, err := time.Parse(model.DateLayout, strings.TrimSpace(field(rec, cols[0])))
		if err != nil {
			return nil, fmt.Errorf("line %d: parse date: %w", line, err)
		}
		vals := make([]float64, 5)
		complete := true
		for k := 0; k < 5; k++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(field(rec, cols[k+1])), 64)
			if err != nil {
				complete = false
				break
			}
			vals[k] = v
		}
		if !complete {
			continue // missing values, same as a null bar from the provider
		}
		bars = append(bars, model.PriceBar{
			Date:   model.Day(date),
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}
