package dig_container

import (
	"context"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/teacherpoli/backoffice/apps/api/echo"
	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
	"github.com/teacherpoli/backoffice/core/student"
	emailsvc "github.com/teacherpoli/backoffice/services/email"
	logsvc "github.com/teacherpoli/backoffice/services/logger"
	metricsvc "github.com/teacherpoli/backoffice/services/metrics"
	"github.com/teacherpoli/backoffice/storage/database"
	inmemdb "github.com/teacherpoli/backoffice/storage/database/inmem"
	sqlxrepos "github.com/teacherpoli/backoffice/storage/database/sqlx"
	"github.com/teacherpoli/backoffice/storage/snapshot"
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newCatalogStore(conf *core.Config) (bonus.Store, error) {
	switch conf.Catalog.Driver {
	case core.SnapshotRedis:
		client, err := snapshot.NewRedisClient(context.Background(), conf.Catalog.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to redis")
		}
		return snapshot.NewRedisStore(client, conf.Catalog.SnapshotKey), nil
	case core.SnapshotMemory:
		return snapshot.NewMemoryStore(), nil
	default:
		return snapshot.NewFileStore(conf.Catalog.FilePath), nil
	}
}

func newStudentRepository(conf *core.Config) (student.Repository, error) {
	if conf.Roster.Driver != core.RosterPostgres {
		return inmemdb.NewStudentRepository(inmemdb.Open()), nil
	}
	db, err := database.Open(context.Background(), conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = database.Migrate(db); err != nil {
		return nil, errors.Wrap(err, "migrating database")
	}
	return sqlxrepos.NewStudentRepository(db), nil
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, os.Stdout)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newAdmins(conf *core.Config) core.AdminChecker {
	return core.NewAdminList(conf.AdminEmails...)
}

func newCatalog(
	store bonus.Store,
	validate *validator.Validate,
	translator ut.Translator,
	logger core.Logger,
	metrics *metricsvc.Metrics,
) *bonus.Service {
	svc := bonus.NewService(store, validate, translator, logger)
	svc.SetRecorder(metrics)
	return svc
}

func newDirectory(
	repo student.Repository,
	validate *validator.Validate,
	translator ut.Translator,
	logger core.Logger,
	mailSvc core.EmailService,
	metrics *metricsvc.Metrics,
) *student.Directory {
	dir := student.NewDirectory(repo, validate, translator, logger)
	dir.SetMailer(mailSvc)
	dir.SetRecorder(metrics)
	return dir
}

type serverParams struct {
	dig.In

	Conf      *core.Config
	Logger    core.Logger
	Admins    core.AdminChecker
	Catalog   *bonus.Service
	Directory *student.Directory
	Metrics   *metricsvc.Metrics
}

func newServer(p serverParams) echoapi.Server {
	return echoapi.NewServer(&echoapi.Options{
		Address:   p.Conf.Server.Address,
		AppName:   p.Conf.AppName,
		SecretKey: p.Conf.SecretKey,
		Debug:     p.Conf.Debug,
		TestMode:  p.Conf.TestMode,
		Logger:    p.Logger,
		Admins:    p.Admins,
		Catalog:   p.Catalog,
		Directory: p.Directory,
		Metrics:   p.Metrics.Handler(),
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(core.NewValidator))
	must(c.Provide(prometheus.NewRegistry))
	must(c.Provide(metricsvc.New))
	must(c.Provide(newCatalogStore))
	must(c.Provide(newStudentRepository))
	must(c.Provide(newEmailService))
	must(c.Provide(newAdmins))
	must(c.Provide(newCatalog))
	must(c.Provide(newDirectory))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
