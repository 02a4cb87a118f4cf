package repository

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que se escribe a través de ellos se confirma o se revierte junto.
type TxRepos struct {
	Products     ProductRepository
	Transactions InventoryTransactionRepository
	Lines        ProductionLineRepository
	Resources    ProductionResourceRepository
	Requests     ProductionRequestRepository
}
