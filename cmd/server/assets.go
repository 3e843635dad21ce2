package main

import "embed"

// embeddedWeb contains the compiled-in templates, static assets and docs.
//
//go:embed web/*
var embeddedWeb embed.FS
