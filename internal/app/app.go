// Package app assembles the service components from the application configuration.
// Both the service and the payloadctl command line tool start from here.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/conversion"
	"github.com/shopbridge/payment-payload-service/internal/derivation"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/methodcatalog"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
	"github.com/shopbridge/payment-payload-service/internal/repository/database/gormdb"
	"github.com/shopbridge/payment-payload-service/internal/repository/database/inmemory"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/storefront"
)

type Components struct {
	Repository database.Repository
	Storefront storefront.Storefront
	Provider   providerapi.ProviderAPI
	Converter  *conversion.Converter
	Locker     methodcatalog.Locker
	Accounts   []providerapi.Credentials
}

// Assemble connects and migrates the database and creates the downstream clients.
func Assemble(conf *config.Application, logger logging.Logger) (*Components, error) {
	if conf == nil {
		return nil, errors.New("no configuration provided")
	}

	repo, err := NewRepository(conf.Database, logger)
	if err != nil {
		return nil, err
	}

	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	sfClient, err := storefront.New(conf.Service.StorefrontService, conf.Security.Fixed.Api)
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront client: %w", err)
	}

	providerClient, err := providerapi.New(conf.Provider.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment provider client: %w", err)
	}

	return &Components{
		Repository: repo,
		Storefront: sfClient,
		Provider:   providerClient,
		Converter:  NewConverter(conf.Payload),
		Locker:     NewLocker(conf.SyncLock, logger),
		Accounts:   interaction.CredentialsFromConfig(conf.Provider),
	}, nil
}

func NewRepository(conf config.DatabaseConfig, logger logging.Logger) (database.Repository, error) {
	switch conf.Use {
	case config.Mysql:
		logger.Info("using mysql database %s", conf.Database)
		return gormdb.NewMySQLConnector(conf, logger)
	case config.Postgres:
		logger.Info("using postgres database %s", conf.Database)
		return gormdb.NewPostgresConnector(conf, logger)
	case config.Inmemory:
		logger.Warn("using in-memory database, data will be lost on restart")
		return inmemory.NewInMemoryProvider(), nil
	}

	return nil, fmt.Errorf("unsupported database type %q", conf.Use)
}

// NewLocker uses redis when an address is configured, so several instances share one lock.
func NewLocker(conf config.SyncLockConfig, logger logging.Logger) methodcatalog.Locker {
	if conf.RedisAddress == "" {
		logger.Info("payment method sync lock is local to this process")
		return methodcatalog.NewLocalLocker()
	}

	client := methodcatalog.NewRedisClient(conf.RedisAddress, conf.RedisPassword, conf.RedisDB)
	return methodcatalog.NewRedisLocker(client, logging.ApplicationName, time.Duration(conf.TTLSeconds)*time.Second)
}

func NewConverter(conf config.PayloadConfig) *conversion.Converter {
	return conversion.NewConverter(derivation.Options{
		UnitMeasure:        conf.UnitMeasure,
		RoundTaxPercentage: conf.RoundTaxPercentage,
	}, conf.Tolerance())
}

func (c *Components) Interactor() (interaction.Interactor, error) {
	return interaction.NewServiceInteractor(c.Repository, c.Storefront, c.Provider, c.Converter, c.Locker, interaction.Options{
		Accounts: c.Accounts,
	})
}
