package db

import (
	"fmt"

	"ninedots/internal/auth"
	"ninedots/internal/jobs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string, maxConns int) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns(maxConns)
	}

	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&auth.RefreshToken{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// Refresh tokens die with their user
	if err := gdb.Exec(`
do $$ begin
  alter table refresh_tokens
    add constraint fk_refresh_tokens_user
    foreign key (user_id) references users(id) on delete cascade;
exception when duplicate_object then null; end $$;
`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_jobs_id_desc on jobs(id desc);`,
		`create index if not exists idx_refresh_tokens_expires on refresh_tokens(expires_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
