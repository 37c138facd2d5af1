package constants

// Обменник событий каталога
const (
	CatalogExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyToolSearchPerformed = "tool_search.performed"
)
