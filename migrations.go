// Package sitecheck embeds repository level assets shared by the binaries.
package sitecheck

import "embed"

// Migrations holds the goose SQL migrations of the PostgreSQL schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
