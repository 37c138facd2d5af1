package schemas

import "embed"

// SchemasFS содержит JSON-схемы событий (events/<name>/v<N>.json)
// и записей каталога (records/<name>/v<N>.json).
//
//go:embed events records
var SchemasFS embed.FS
