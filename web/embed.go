// Package web holds the assets compiled into the scoreboard binary.
package web

import "embed"

// Templates contains the HTML templates for the leaderboard page.
//
//go:embed templates/*.tmpl
var Templates embed.FS
