package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang/glog"
	mocket "github.com/selvatico/go-mocket"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type ConnectionFactory struct {
	Config *DatabaseConfig
	DB     *gorm.DB
}

// NewConnectionFactory opens the database connection described by the given
// config. It panics when the database cannot be reached, as the process is
// useless without it.
func NewConnectionFactory(config *DatabaseConfig) (*ConnectionFactory, func()) {
	var (
		dbx *sql.DB
		db  *gorm.DB
		err error
	)

	dbx, err = sql.Open(config.Dialect, config.ConnectionString())
	if err != nil {
		dbx, err = sql.Open(config.Dialect, config.LogSafeConnectionString())
		if err != nil {
			panic(fmt.Sprintf(
				"failed to open database connection with config: %s, error: %v",
				config.LogSafeConnectionString(), err,
			))
		}
	}
	dbx.SetMaxOpenConns(config.MaxOpenConnections)

	db, err = gorm.Open(postgres.New(postgres.Config{
		Conn:                 dbx,
		PreferSimpleProtocol: !config.EnablePreparedStatements,
	}), &gorm.Config{
		PrepareStmt:          config.EnablePreparedStatements,
		FullSaveAssociations: false,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf(
			"failed to connect to %s database %s with connection string: %s\nError: %s",
			config.Dialect, config.Name, config.LogSafeConnectionString(), err.Error(),
		))
	}
	if config.Debug {
		db = db.Debug()
	}

	connectionFactory := &ConnectionFactory{Config: config, DB: db}
	return connectionFactory, func() {
		connectionFactory.checkConnection()
		connectionFactory.close()
	}
}

// NewMockConnectionFactory builds a connection factory backed by the mocket
// fake driver, for use in unit tests. No real database is involved.
func NewMockConnectionFactory(dbConfig *DatabaseConfig) *ConnectionFactory {
	if dbConfig == nil {
		dbConfig = &DatabaseConfig{}
	}
	mocket.Catcher.Register()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName:           mocket.DriverName,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open mock database: %v", err))
	}
	connectionFactory := &ConnectionFactory{Config: dbConfig, DB: db}
	return connectionFactory
}

// New returns a fresh session on the shared connection pool
func (f *ConnectionFactory) New() *gorm.DB {
	return f.DB.Session(&gorm.Session{})
}

func (f *ConnectionFactory) checkConnection() {
	sqlDB, err := f.DB.DB()
	if err != nil {
		glog.Errorf("Unable to acquire underlying database connection: %s", err.Error())
		return
	}
	for {
		if err := sqlDB.Ping(); err != nil {
			glog.Errorf("Unable to ping database: %s", err.Error())
			time.Sleep(time.Second)
			continue
		}
		return
	}
}

func (f *ConnectionFactory) close() {
	sqlDB, err := f.DB.DB()
	if err != nil {
		glog.Errorf("Unable to acquire underlying database connection: %s", err.Error())
		return
	}
	if err := sqlDB.Close(); err != nil {
		glog.Errorf("Unable to close database connection: %s", err.Error())
	}
}
