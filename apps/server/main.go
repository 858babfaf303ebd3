package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/darasahq/ubao/apps/server/echo"
	"github.com/darasahq/ubao/core"
	logsvc "github.com/darasahq/ubao/services/logger"
	"github.com/darasahq/ubao/storage/memdb"
)

func main() {
	conf := core.NewConfig()

	var logger core.Logger
	std := log.New(os.Stdout, "SERVER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	db := memdb.New()
	questions := memdb.NewQuestionRepository(db)
	catalog := memdb.NewCatalogRepository(db)
	accounts := memdb.NewAccountRepository(db)

	if err := seed(catalog, accounts); err != nil {
		logger.Fatal(fmt.Sprintf("seeding: %v", err), err)
	}

	server := echoapi.NewServer(&echoapi.Options{
		Address:   conf.Server.Address,
		Conf:      conf,
		Logger:    logger,
		Questions: questions,
		Catalog:   catalog,
		Accounts:  accounts,
	})

	logger.Info(fmt.Sprintf("Board service stand-in listening on %s : version %q", conf.Server.Address, conf.Build))
	go server.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
