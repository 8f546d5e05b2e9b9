package web

import "embed"

// StaticFS holds the embedded static assets: styles, the motion player and
// the htmx CSRF hook.
//
//go:embed static/*
var StaticFS embed.FS
