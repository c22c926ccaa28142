package repository

import "context"

// Tx exposes repositories bound to a single open transaction.
type Tx interface {
	Users() UserRepository
	Tokens() TokenRepository
}

// Transactor runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
}
