// Package webui exposes the embedded dashboard shell.
// It lives at the module root so it can embed the sibling "web/" directory.
package webui

import "embed"

// FS holds web/index.html.
//
//go:embed web
var FS embed.FS
