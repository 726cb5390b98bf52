package main

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
	"github.com/teacherpoli/backoffice/core/student"
	logsvc "github.com/teacherpoli/backoffice/services/logger"
	"github.com/teacherpoli/backoffice/storage/database"
	inmemdb "github.com/teacherpoli/backoffice/storage/database/inmem"
	sqlxrepos "github.com/teacherpoli/backoffice/storage/database/sqlx"
	"github.com/teacherpoli/backoffice/storage/snapshot"
)

func main() {
	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		stdLogger.Fatal(err)
	}
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	defer logger.Close()

	cli, err := newCommandLine(conf, logger)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		logger.Close()
		os.Exit(1)
	}
}

func newCommandLine(conf *core.Config, logger core.Logger) (*commandLine, error) {
	ctx := context.Background()
	validate, translator := core.NewValidator()

	var store bonus.Store
	switch conf.Catalog.Driver {
	case core.SnapshotRedis:
		client, err := snapshot.NewRedisClient(ctx, conf.Catalog.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to redis")
		}
		store = snapshot.NewRedisStore(client, conf.Catalog.SnapshotKey)
	case core.SnapshotMemory:
		store = snapshot.NewMemoryStore()
	default:
		store = snapshot.NewFileStore(conf.Catalog.FilePath)
	}

	cli := &commandLine{
		out:       os.Stdout,
		appName:   conf.AppName,
		secretKey: conf.SecretKey,
		tokenTTL:  conf.Server.JWTExpirationDelta,
		admins:    core.NewAdminList(conf.AdminEmails...),
		catalog:   bonus.NewService(store, validate, translator, logger),
	}

	var repo student.Repository
	if conf.Roster.Driver == core.RosterPostgres {
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "opening database")
		}
		repo = sqlxrepos.NewStudentRepository(db)
		cli.migrate = func(command string, args ...string) error {
			return database.RunMigrations(db, command, args...)
		}
	} else {
		repo = inmemdb.NewStudentRepository(inmemdb.Open())
		cli.migrate = func(string, ...string) error {
			return errors.New("migrations need the postgres roster driver")
		}
	}
	cli.dir = student.NewDirectory(repo, validate, translator, logger)
	return cli, nil
}
