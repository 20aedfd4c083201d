// Package schemas embeds the JSON Schemas used to validate input files.
package schemas

import _ "embed"

// SnapshotSchemaJSON is the schema for leaderboard snapshot files.
//
//go:embed snapshot.schema.json
var SnapshotSchemaJSON string
