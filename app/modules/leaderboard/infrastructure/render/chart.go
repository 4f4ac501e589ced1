package render

import (
	"fmt"
	"io"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colours used for the totals chart.
type ChartPalette struct {
	Background string
	Bar        string
	TextColor  string
}

// DefaultPalette is used when no palette is configured.
var DefaultPalette = ChartPalette{
	Background: "#ffffff",
	Bar:        "#2f6f4f",
	TextColor:  "#1b1b1b",
}

// maxChartBars keeps the chart legible for long leaderboards.
const maxChartBars = 20

// WriteChart renders a PNG bar chart of team totals, best first.
func WriteChart(w io.Writer, title string, standings []leaderboarddomain.Standing, palette ChartPalette) error {
	if len(standings) == 0 {
		return renderNoDataPlaceholder(w, palette)
	}
	if len(standings) > maxChartBars {
		standings = standings[:maxChartBars]
	}

	bars := make([]chart.Value, len(standings))
	for i, s := range standings {
		bars[i] = chart.Value{
			Label: s.Team,
			Value: float64(s.Total),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(trimHash(palette.Bar)),
				StrokeColor: drawing.ColorFromHex(trimHash(palette.Bar)),
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    max(400, 80*len(bars)),
		Height:   400,
		BarWidth: 50,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex(trimHash(palette.Background)),
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex(trimHash(palette.Background)),
		},
		TitleStyle: chart.Style{
			FontColor: drawing.ColorFromHex(trimHash(palette.TextColor)),
		},
		XAxis: chart.Style{
			FontColor: drawing.ColorFromHex(trimHash(palette.TextColor)),
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: drawing.ColorFromHex(trimHash(palette.TextColor)),
			},
		},
		Bars: bars,
	}

	// Bars start at zero. go-chart rejects an empty range, so an all-zero
	// leaderboard still gets a height of 1.
	graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: float64(max(1, maxTotal(standings)))}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// renderNoDataPlaceholder draws the message straight onto a PNG renderer;
// go-chart refuses to render a chart without series.
func renderNoDataPlaceholder(w io.Writer, palette ChartPalette) error {
	const (
		width  = 400
		height = 200
		msg    = "No standings yet"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	r.SetFillColor(drawing.ColorFromHex(trimHash(palette.Background)))
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorFromHex(trimHash(palette.TextColor)))
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	return r.Save(w)
}

func maxTotal(standings []leaderboarddomain.Standing) int {
	best := 0
	for _, s := range standings {
		best = max(best, s.Total)
	}
	return best
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}
