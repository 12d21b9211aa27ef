// Package data embeds the default slide datasets.
package data

import "embed"

// FS holds scene1.csv, scene2.csv and scene3.csv.
//
//go:embed *.csv
var FS embed.FS
