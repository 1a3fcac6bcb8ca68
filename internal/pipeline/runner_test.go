package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SoyCrush/internal/calculator"
	"SoyCrush/internal/chart"
	"SoyCrush/internal/collector"
	"SoyCrush/internal/config"
	"SoyCrush/internal/model"
	"SoyCrush/internal/sink"
)

var (
	tickers = map[model.Commodity]string{model.Oil: "ZL1", model.Meal: "ZM1", model.Beans: "ZS1"}
	codes   = map[model.Resolution]string{model.Day: "1D", model.Minute: "1", model.Second: "1S"}
)

// recordingSink keeps figure names in write order.
type recordingSink struct{ names []string }

func (s *recordingSink) Write(name string, _ *chart.Figure) error {
	s.names = append(s.names, name)
	return nil
}
func (s *recordingSink) Close() error { return nil }

// writeFixtures writes one row per file; each resolution gets its own timestamp.
func writeFixtures(t *testing.T, dir string) map[model.Resolution]int64 {
	t.Helper()
	closes := map[model.Commodity]string{model.Oil: "20", model.Meal: "10", model.Beans: "50"}
	stamps := map[model.Resolution]int64{model.Day: 1704067200, model.Minute: 1704067260, model.Second: 1704067201}
	for c, ticker := range tickers {
		for r, code := range codes {
			name := fmt.Sprintf("CBOT_DL_%s!, %s.csv", ticker, code)
			body := fmt.Sprintf("time,open,high,low,close,Volume\n%d,1,2,0.5,%s,7\n", stamps[r], closes[c])
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
		}
	}
	return stamps
}

func TestRun_EndToEndFixtures(t *testing.T) {
	dir := t.TempDir()
	stamps := writeFixtures(t, dir)

	loader, err := collector.NewFileLoader(dir, config.DefaultNamingConvention, "csv", "CBOT", "DL", tickers, codes)
	require.NoError(t, err)
	rs := &recordingSink{}

	res, err := NewRunner(collector.NewCollector(loader), rs).Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)

	require.Len(t, res.Spreads, 3)
	for _, r := range model.Resolutions {
		s := res.Spreads[r]
		require.Equal(t, 1, s.Len(), "resolution %s", r)
		assert.Equal(t, stamps[r], s.Points[0].Time.Unix())
		assert.InDelta(t, 1.92, s.Points[0].Value, 1e-9)
	}

	require.Len(t, res.Summaries, 3)
	assert.Equal(t, model.Second, res.Summaries[0].Resolution)
	assert.Equal(t, []string{"oil_prices", "meal_prices", "beans_prices", "crush_spread"}, rs.names)
}

func TestRun_WritesChartFiles(t *testing.T) {
	ml := &collector.MockLoader{
		BasePrice: map[model.Commodity]float64{model.Oil: 45, model.Meal: 320, model.Beans: 1150},
		Count:     20,
		Start:     time.Unix(1700000000, 0),
	}
	out := t.TempDir()
	fs, err := sink.NewFileSink(out, "svg", 600, 200)
	require.NoError(t, err)

	res, err := NewRunner(collector.NewCollector(ml), fs).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Figures, 4)
	assert.Len(t, fs.Written(), 4)
	_, err = os.Stat(filepath.Join(out, "crush_spread.svg"))
	assert.NoError(t, err)
}

func TestRun_MissingFileAborts(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "CBOT_DL_ZM1!, 1S.csv")))

	loader, err := collector.NewFileLoader(dir, config.DefaultNamingConvention, "csv", "CBOT", "DL", tickers, codes)
	require.NoError(t, err)
	rs := &recordingSink{}

	_, err = NewRunner(collector.NewCollector(loader), rs).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, rs.names)
}

func TestRun_MisalignedFixturesFail(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	extra := "time,close\n1704067200,20\n1704153600,21\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CBOT_DL_ZL1!, 1D.csv"), []byte(extra), 0644))

	loader, err := collector.NewFileLoader(dir, config.DefaultNamingConvention, "csv", "CBOT", "DL", tickers, codes)
	require.NoError(t, err)

	_, err = NewRunner(collector.NewCollector(loader), sink.NewNoopSink()).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculator.ErrLengthMismatch))
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	loader, err := collector.NewFileLoader(dir, config.DefaultNamingConvention, "csv", "CBOT", "DL", tickers, codes)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(collector.NewCollector(loader), sink.NewNoopSink()).Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
