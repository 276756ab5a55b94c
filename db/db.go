package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// Supported reports whether t names a wired backend.
func (t DBType) Supported() bool {
	return t == Postgres || t == Mongo
}

// DB is the lifecycle shared by both backends. Repositories talk to the
// concrete connection, not this interface.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
