// Package squidword provides embedded assets for production builds.
package squidword

import "embed"

// Embedded templates for production builds.
// In dev mode (DEV=true), templates are loaded from disk for hot reloading.

//go:embed all:web/templates
var TemplateFS embed.FS

// TemplatePathFromRoot is the on-disk template directory used in dev mode.
const TemplatePathFromRoot = "web/templates"
