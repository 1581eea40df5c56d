package app

import (
	"context"
	"io"
	"time"

	"hotposts/3rdparty/reddit"
	"hotposts/topten"
	"hotposts/topten/storage"
	gormutil "hotposts/util/gorm"

	"github.com/jfk9w-go/flu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Config struct {
	Reddit   *reddit.Config
	Database string
	StaleTTL flu.Duration
	Limit    int
	Logging  struct{ Level string }
}

type Instance struct {
	version  string
	config   flu.Bytes
	services []io.Closer

	fetcher *topten.Fetcher
	db      *gorm.DB
	storage topten.Storage
}

func Create(version string, config flu.Bytes) *Instance {
	return &Instance{
		version: version,
		config:  config,
	}
}

func (app *Instance) Now() time.Time {
	return time.Now()
}

func (app *Instance) GetVersion() string {
	return app.version
}

func (app *Instance) GetConfig(value interface{}) error {
	return flu.DecodeFrom(app.config, flu.YAML(value))
}

func (app *Instance) Manage(service io.Closer) {
	app.services = append(app.services, service)
}

func (app *Instance) Close() error {
	for i := len(app.services) - 1; i >= 0; i-- {
		flu.CloseQuietly(app.services[i])
	}

	return nil
}

func (app *Instance) ConfigureLogging() error {
	config := new(Config)
	if err := app.GetConfig(config); err != nil {
		return errors.Wrap(err, "get config")
	}

	if config.Logging.Level == "" {
		return nil
	}

	level, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return errors.Wrapf(err, "parse log level %s", config.Logging.Level)
	}

	logrus.SetLevel(level)
	return nil
}

func (app *Instance) GetDatabase() (*gorm.DB, error) {
	if app.db != nil {
		return app.db, nil
	}

	config := new(Config)
	if err := app.GetConfig(config); err != nil {
		return nil, errors.Wrap(err, "get config")
	}

	db, err := gormutil.NewPostgres(config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	app.Manage((*gormutil.Closer)(db))
	app.db = db
	return db, nil
}

func (app *Instance) GetStorage(ctx context.Context) (topten.Storage, error) {
	if app.storage != nil {
		return app.storage, nil
	}

	config := new(Config)
	if err := app.GetConfig(config); err != nil {
		return nil, errors.Wrap(err, "get config")
	}

	if config.Database == "" {
		return nil, nil
	}

	db, err := app.GetDatabase()
	if err != nil {
		return nil, errors.Wrap(err, "get database")
	}

	sql := (*storage.SQL)(db)
	if err := sql.Init(ctx); err != nil {
		return nil, errors.Wrap(err, "init storage")
	}

	if ttl := config.StaleTTL.GetOrDefault(0); ttl > 0 {
		deleted, err := sql.DeleteStaleThings(ctx, app.Now().Add(-ttl))
		if err != nil {
			return nil, errors.Wrap(err, "delete stale things")
		}

		logrus.Debugf("deleted %d stale things", deleted)
	}

	app.storage = sql
	return sql, nil
}

func (app *Instance) GetFetcher(ctx context.Context) (*topten.Fetcher, error) {
	if app.fetcher != nil {
		return app.fetcher, nil
	}

	config := new(Config)
	if err := app.GetConfig(config); err != nil {
		return nil, errors.Wrap(err, "get config")
	}

	storage, err := app.GetStorage(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get storage")
	}

	app.fetcher = &topten.Fetcher{
		Clock:   app,
		Client:  reddit.NewClient(nil, config.Reddit, app.version),
		Storage: storage,
		Limit:   config.Limit,
	}

	return app.fetcher, nil
}
