package services

// ServiceContainer bundles the service facades for injection into handlers.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Reversal    ReversalSvcFacade
	Ledger      LedgerSvcFacade
}
