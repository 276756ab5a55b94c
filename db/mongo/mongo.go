package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client *mongo.Client
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
	DBName string
}

// NewMongoDB prepares a client for the named database. The timeout bounds
// the initial connect and ping.
func NewMongoDB(url, dbName string, timeout time.Duration) *MongoDB {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return &MongoDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
		DBName: dbName,
	}
}

func (m *MongoDB) Connect() error {
	client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	return m.Client.Ping(m.Ctx, nil)
}

// Database returns the handle repositories are built on.
func (m *MongoDB) Database() *mongo.Database {
	return m.Client.Database(m.DBName)
}

func (m *MongoDB) Disconnect() error {
	m.Cancel()
	return m.Client.Disconnect(m.Ctx)
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}
