package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/brain-score/scoreboard/internal/leaderboard"
	"github.com/brain-score/scoreboard/internal/models"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const maxModelWidth = 40

var rgbPattern = regexp.MustCompile(`rgb\((\d+), (\d+), (\d+)\)`)

func newTableCommand() *cobra.Command {
	var (
		src     sourceOptions
		noColor bool
		top     int
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the leaderboard as a terminal table",
		Long: `Print the leaderboard as a terminal table in rank order.

Score cells are shaded with the same palette as the HTML page. Color is
disabled when stdout is not a terminal or --no-color is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _, err := src.buildPage(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			useColor := !noColor && isTerminal(w)
			return printTable(w, page, top, useColor)
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().IntVar(&top, "top", 0, "Only print the best N models")

	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printTable writes one line per model in rank order. Columns are padded to
// their display width before coloring so escape codes do not skew alignment.
func printTable(w io.Writer, page *models.Page, top int, useColor bool) error {
	rows := leaderboard.SortByRank(page.Models)
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	header := []string{"Rank", "Model"}
	for _, b := range page.Benchmarks {
		header = append(header, b.DisplayName)
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := []string{strconv.Itoa(row.Rank), runewidth.Truncate(row.Name, maxModelWidth, "…")}
		for _, s := range row.Scores {
			line = append(line, s.ScoreCeiled)
		}
		cells[i] = line
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, line := range cells {
		for i, c := range line {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	bold := color.New(color.Bold)
	setColor(bold, useColor)

	var sb strings.Builder
	for i, h := range header {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(bold.Sprint(padRight(h, widths[i])))
	}
	sb.WriteString("\n")

	for r, line := range cells {
		for i, c := range line {
			if i > 0 {
				sb.WriteString("  ")
			}
			padded := padRight(c, widths[i])
			if i >= 2 {
				padded = shade(padded, rows[r].Scores[i-2].Color, useColor)
			}
			sb.WriteString(padded)
		}
		sb.WriteString("\n")
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}

// shade applies the background of a cell's CSS color declaration.
func shade(s, css string, useColor bool) string {
	m := rgbPattern.FindStringSubmatch(css)
	if m == nil {
		return s
	}
	r, _ := strconv.Atoi(m[1])
	g, _ := strconv.Atoi(m[2])
	b, _ := strconv.Atoi(m[3])
	c := color.BgRGB(r, g, b).Add(color.FgBlack)
	setColor(c, useColor)
	return c.Sprint(s)
}

func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
