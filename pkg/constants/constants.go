package constants

type contextKey int

const (
	// TransactionKey is the context key holding the current database transaction
	TransactionKey contextKey = iota
)

// TransactionIDkey is the context key holding the current transaction ID.
// It is a plain string key so packages that cannot import pkg/db (e.g. the
// logger) can still read it.
const TransactionIDkey string = "txid"
