package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"WeekdayCycle/internal/model"
)

// ChartTitle names the strategy the chart shows.
func ChartTitle(res *model.Result) string {
	return fmt.Sprintf("%s Investment Performance (Buy on %s, Sell on %s)", res.Symbol, res.BuyWeekday, res.SellWeekday)
}

// PlotCumulativeProfit renders cumulative profit against buy date. The image
// format follows the file extension (png, svg, pdf).
func PlotCumulativeProfit(res *model.Result, path string) error {
	if len(res.Cycles) == 0 {
		return fmt.Errorf("plot: no cycles")
	}

	p := plot.New()
	p.Title.Text = ChartTitle(res)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Cumulative Profit (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(res.Cycles))
	for i, c := range res.Cycles {
		pts[i].X = float64(c.Buy.Date.Unix())
		pts[i].Y = c.CumulativeProfit
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	blue := color.RGBA{B: 255, A: 255}
	line.Color = blue
	points.Color = blue
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(2)

	p.Add(line, points)
	p.Legend.Add("Cumulative Profit Over Time", line, points)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
