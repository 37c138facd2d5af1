package seeds

import _ "embed"

// ToolsJSON - стартовый набор инструментов для пустого каталога
//
//go:embed tools.json
var ToolsJSON []byte
