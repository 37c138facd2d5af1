package domain

// StoreStatus - живое состояние соединения с хранилищем
type StoreStatus struct {
	Driver    string
	Connected bool
	Host      string
	Database  string
	Error     string
}
