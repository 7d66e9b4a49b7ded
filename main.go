package main

import (
	"context"
	"eghl/config"
	"eghl/internal"
	"eghl/services"
	"flag"
	"time"
)

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}

	var database services.Database
	if conf.Mongo.Enabled {
		mongo, err := internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err = mongo.Ping(ctx)
		cancel()
		if err != nil {
			logger.Error("mongo ping", err)
			return
		}
		database = mongo
		logger.Info("mongo client initialized")
	}

	payments, err := internal.NewPayments(&conf.Gateway, nil)
	if err != nil {
		logger.Error("payments", err)
		return
	}
	payments.SetLogger(internal.NewLogger("payments", conf.IsDebug, database))
	payments.SetDatabase(database)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, database))
	server.SetPaymentsService(payments)
	server.SetDatabase(database)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
