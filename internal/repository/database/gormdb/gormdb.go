package gormdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
)

const queryTimeout = 20 * time.Second

var _ database.Repository = (*gormConnector)(nil)

type gormConnector struct {
	logger logging.Logger
	db     *gorm.DB
}

func NewMySQLConnector(conf config.DatabaseConfig, logger logging.Logger) (database.Repository, error) {
	dsn, err := buildMySQLDSN(conf.Username, conf.Password, conf.Database, conf.Parameters)
	if err != nil {
		return nil, err
	}

	return open(mysql.Open(dsn), logger)
}

// NewPostgresConnector connects through the pgx database/sql driver.
func NewPostgresConnector(conf config.DatabaseConfig, logger logging.Logger) (database.Repository, error) {
	dsn, err := buildPostgresDSN(conf.Username, conf.Password, conf.Database, conf.Parameters)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return open(postgres.New(postgres.Config{Conn: sqlDB}), logger)
}

func open(dialector gorm.Dialector, logger logging.Logger) (database.Repository, error) {
	gormConfig := gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "pay_",
		},
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}
	db, err := gorm.Open(dialector, &gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return &gormConnector{
		logger: logger,
		db:     db,
	}, nil
}

func (g *gormConnector) Migrate() error {
	err := g.db.AutoMigrate(
		&entities.PaymentMethod{},
		&entities.PaymentAttempt{},
		&entities.PaymentAttemptLog{},
	)

	if err != nil {
		return err
	}

	return nil
}

// translate maps gorm errors onto the repository's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return database.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return database.ErrAlreadyExists
	default:
		return err
	}
}

// buildMySQLDSN expects database in the driver's address form, e.g. tcp(localhost:3306)/payloads.
func buildMySQLDSN(username, password, database string, parameters []string) (string, error) {
	if err := checkValues(username, password, database); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%s@%s%s", username, password, database, parameterString(parameters)), nil
}

// buildPostgresDSN expects database as host:port/dbname.
func buildPostgresDSN(username, password, database string, parameters []string) (string, error) {
	if err := checkValues(username, password, database); err != nil {
		return "", err
	}

	return fmt.Sprintf("postgres://%s:%s@%s%s", username, password, database, parameterString(parameters)), nil
}

func parameterString(parameters []string) string {
	if len(parameters) == 0 {
		return ""
	}

	return fmt.Sprintf("?%s", strings.Join(parameters, "&"))
}

func checkValues(username, password, database string) error {
	vals := []struct {
		name  string
		value string
	}{
		{"username", username},
		{"password", password},
		{"database", database},
	}

	for _, v := range vals {
		if v.value == "" {
			return fmt.Errorf("%s must not be empty", v.name)
		}
	}

	return nil
}
