// Package views holds html templates of customer pages
package views

import "embed"

// FS contains layout.html and one template per page
//
//go:embed *.html
var FS embed.FS
