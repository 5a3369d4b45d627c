package db

import (
	"net/http"

	"github.com/Evolveum/integration-catalog-sub000/pkg/errors"
	"github.com/Evolveum/integration-catalog-sub000/pkg/shared"
)

// TransactionMiddleware creates a new HTTP middleware that begins a database
// transaction and stores it in the request context.
func TransactionMiddleware(f *ConnectionFactory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return transactionMiddleware(f, next)
	}
}

func transactionMiddleware(f *ConnectionFactory, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := f.NewContext(r.Context())
		if err != nil {
			shared.HandleError(r.Context(), w, errors.ErrorGeneral, "Could not create transaction")
			return
		}

		// handlers must mark the transaction for rollback on failure,
		// Resolve commits otherwise
		defer Resolve(ctx)

		*r = *r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}
