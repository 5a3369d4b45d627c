package db

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migration is a wrapper over gormigrate bound to a connection factory so
// command handlers can run migrations without carrying gorm around.
type Migration struct {
	DbFactory   *ConnectionFactory
	Gormigrate  *gormigrate.Gormigrate
	GormOptions *gormigrate.Options
}

func NewMigration(dbConfig *DatabaseConfig, gormOptions *gormigrate.Options, migrations []*gormigrate.Migration) (*Migration, func(), error) {
	dbFactory, cleanup := NewConnectionFactory(dbConfig)
	return &Migration{
		DbFactory:   dbFactory,
		Gormigrate:  gormigrate.New(dbFactory.New(), gormOptions, migrations),
		GormOptions: gormOptions,
	}, cleanup, nil
}

func (m *Migration) Migrate() error {
	return m.Gormigrate.Migrate()
}

// MigrateTo migrates the database up to (and including) the migration with
// the given id.
func (m *Migration) MigrateTo(migrationID string) error {
	return m.Gormigrate.MigrateTo(migrationID)
}

func (m *Migration) RollbackLast() error {
	return m.Gormigrate.RollbackLast()
}

// RollbackTo undoes migrations down to (but not including) the migration
// with the given id.
func (m *Migration) RollbackTo(migrationID string) error {
	return m.Gormigrate.RollbackTo(migrationID)
}

func (m *Migration) RollbackAll() error {
	db := m.DbFactory.New()
	type Migration struct {
		ID string
	}
	var result Migration
	for {
		err := db.First(&result).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err := m.Gormigrate.RollbackLast(); err != nil {
			return err
		}
	}
}

func (m *Migration) CountMigrationsApplied() int {
	db := m.DbFactory.New()
	var count int64
	db.Table(m.GormOptions.TableName).Count(&count)
	return int(count)
}

// Model represents the base model struct. All entities will have this struct embedded.
type Model struct {
	ID        string `gorm:"primary_key"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type MigrationAction func(tx *gorm.DB, apply bool) error

// CreateTableAction creates the table on migrate and drops it on rollback
func CreateTableAction(table interface{}) MigrationAction {
	return func(tx *gorm.DB, apply bool) error {
		if apply {
			if err := tx.AutoMigrate(table); err != nil {
				return errors.Wrapf(err, "creating table for %T", table)
			}
		} else {
			if err := tx.Migrator().DropTable(table); err != nil {
				return errors.Wrapf(err, "dropping table for %T", table)
			}
		}
		return nil
	}
}

// AddTableColumnsAction adds the missing columns of the model on migrate,
// rollback is a no-op since column removal would lose data.
func AddTableColumnsAction(table interface{}) MigrationAction {
	return func(tx *gorm.DB, apply bool) error {
		if apply {
			if err := tx.AutoMigrate(table); err != nil {
				return errors.Wrapf(err, "adding columns for %T", table)
			}
		}
		return nil
	}
}

// ExecAction runs raw sql, applySql on migrate and unapplySql on rollback.
// An empty statement is skipped.
func ExecAction(applySql string, unapplySql string) MigrationAction {
	return func(tx *gorm.DB, apply bool) error {
		if apply {
			if applySql != "" {
				if err := tx.Exec(applySql).Error; err != nil {
					return errors.Wrapf(err, "executing %s", applySql)
				}
			}
		} else {
			if unapplySql != "" {
				if err := tx.Exec(unapplySql).Error; err != nil {
					return errors.Wrapf(err, "executing %s", unapplySql)
				}
			}
		}
		return nil
	}
}

// CreateMigrationFromActions bundles migration actions into a single reversible
// gormigrate migration. Rollback runs the actions in reverse order.
func CreateMigrationFromActions(id string, actions ...MigrationAction) *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: id,
		Migrate: func(tx *gorm.DB) error {
			for _, action := range actions {
				if err := action(tx, true); err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			for i := len(actions) - 1; i >= 0; i-- {
				if err := actions[i](tx, false); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
