package database

import (
	"context"
	"time"

	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoInstance struct {
	read, write *mongo.Database
}

func (m *mongoInstance) ReadDB() *mongo.Database {
	return m.read
}
func (m *mongoInstance) WriteDB() *mongo.Database {
	return m.write
}
func (m *mongoInstance) Disconnect(ctx context.Context) (err error) {
	deferFunc := logger.LogWithDefer("mongodb: disconnect...")
	defer deferFunc()

	if err := m.write.Client().Disconnect(ctx); err != nil {
		return err
	}
	if m.read.Client() != m.write.Client() {
		return m.read.Client().Disconnect(ctx)
	}
	return nil
}

// InitMongoDB return mongo db read & write instance
func InitMongoDB(ctx context.Context, readHost, writeHost, dbName string) interfaces.MongoDatabase {
	deferFunc := logger.LogWithDefer("Load MongoDB connection...")
	defer deferFunc()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	writeClient := connectMongo(ctx, writeHost)
	readClient := writeClient
	if readHost != writeHost {
		readClient = connectMongo(ctx, readHost)
	}

	return &mongoInstance{
		read:  readClient.Database(dbName),
		write: writeClient.Database(dbName),
	}
}

func connectMongo(ctx context.Context, host string) *mongo.Client {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(host))
	if err != nil {
		panic("mongo: " + err.Error())
	}
	if err := client.Ping(ctx, nil); err != nil {
		panic("mongo: ping: " + err.Error())
	}
	return client
}
