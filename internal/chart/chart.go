// Package chart draws the leaderboard's average scores as a PNG bar chart.
package chart

import (
	"bytes"
	"fmt"

	"github.com/brain-score/scoreboard/internal/display"
	"github.com/brain-score/scoreboard/internal/leaderboard"
	"github.com/brain-score/scoreboard/internal/models"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	width     = 1024
	height    = 480
	barWidth  = 24
	maxBars   = 30
	noDataMsg = "No scored models"
)

var (
	background = drawing.ColorWhite
	textColor  = drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// Options limits what is drawn.
type Options struct {
	// Top is the number of best-ranked models to draw. Zero draws up to 30.
	Top int
}

// AveragesPNG renders one bar per model in rank order, colored with the
// score palette.
func AveragesPNG(page *models.Page, opts Options) ([]byte, error) {
	rows := leaderboard.SortByRank(page.Models)
	if len(rows) == 0 {
		return renderNoData()
	}

	top := opts.Top
	if top <= 0 {
		top = maxBars
	}
	if len(rows) > top {
		rows = rows[:top]
	}

	bars := make([]gochart.Value, len(rows))
	for i, row := range rows {
		r, g, b := display.RGB255(row.Average)
		fill := drawing.Color{R: r, G: g, B: b, A: 0xff}
		bars[i] = gochart.Value{
			Label: fmt.Sprintf("%d. %s", row.Rank, row.Name),
			Value: row.Average,
			Style: gochart.Style{
				FillColor:   fill,
				StrokeColor: fill,
			},
		}
	}

	graph := gochart.BarChart{
		Title:    "Average score",
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		Background: gochart.Style{
			FillColor: background,
			Padding:   gochart.Box{Top: 40, Bottom: 120},
		},
		Canvas: gochart.Style{
			FillColor: background,
		},
		XAxis: gochart.Style{
			FontColor:           textColor,
			TextRotationDegrees: 90,
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{
				FontColor: textColor,
			},
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderNoData() ([]byte, error) {
	graph := gochart.Chart{
		Width:  400,
		Height: 200,
		Background: gochart.Style{
			FillColor: background,
		},
		Canvas: gochart.Style{
			FillColor: background,
		},
		Elements: []gochart.Renderable{
			func(r gochart.Renderer, cb gochart.Box, _ gochart.Style) {
				r.SetFontColor(textColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(noDataMsg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(noDataMsg, x, y)
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}
