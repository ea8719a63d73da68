// Package web embeds the browser-facing assets: the page template served
// at / and the static files (stylesheet, sync controller script).
package web

import "embed"

//go:embed templates
var Templates embed.FS

//go:embed static
var Static embed.FS
