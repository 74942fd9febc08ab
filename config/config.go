package config

import (
	"context"
	"fmt"
	"log"

	"github.com/coachlab/notification-service/config/broker"
	"github.com/coachlab/notification-service/config/database"
	"github.com/coachlab/notification-service/config/env"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
)

// Config app
type Config struct {
	SQL    interfaces.SQLDatabase
	Mongo  interfaces.MongoDatabase
	Redis  interfaces.RedisPool
	Broker interfaces.Broker
}

// Init app config, every dependency must ready before load config timeout
func Init(serviceName string) *Config {
	env.Load(serviceName)
	e := env.BaseEnv()

	ctx, cancel := context.WithTimeout(context.Background(), e.LoadConfigTimeout)
	defer cancel()

	cfgChan := make(chan *Config)
	errConnect := make(chan interface{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errConnect <- r
			}
			close(cfgChan)
			close(errConnect)
		}()

		cfg := new(Config)
		switch e.DBEngine {
		case env.DBEngineMongo:
			cfg.Mongo = database.InitMongoDB(ctx, e.DbMongoReadHost, e.DbMongoWriteHost, e.DbMongoDatabaseName)
		default:
			cfg.SQL = database.InitSQLDatabase(e.SQLDriverName, e.DbSQLReadDSN, e.DbSQLWriteDSN)
		}
		if e.DbRedisWriteDSN != "" {
			cfg.Redis = database.InitRedis(e.DbRedisReadDSN, e.DbRedisWriteDSN)
		}
		if e.UseKafkaConsumer {
			cfg.Broker = broker.InitKafkaBroker(e.Kafka.Brokers, e.Kafka.ClientID, e.Kafka.ClientVersion)
		}

		cfgChan <- cfg
	}()

	// with timeout to init configuration
	select {
	case cfg := <-cfgChan:
		return cfg
	case <-ctx.Done():
		panic(fmt.Errorf("Timeout to load selected dependencies: %v", ctx.Err()))
	case e := <-errConnect:
		panic(fmt.Errorf("Failed init configuration :=> %v", e))
	}
}

// Exit release all connection, think as deferred function in main
func (c *Config) Exit(ctx context.Context) {
	for _, closer := range []interfaces.Closer{c.SQL, c.Mongo, c.Redis, c.Broker} {
		if closer == nil {
			continue
		}
		if err := closer.Disconnect(ctx); err != nil {
			log.Printf("\x1b[31;1mConfig: close connection error: %v\x1b[0m\n", err)
		}
	}

	log.Println("\x1b[33;1mConfig: Success close all connection\x1b[0m")
}
