package interaction

import (
	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
)

// CredentialsFromConfig maps the configured provider accounts.
func CredentialsFromConfig(conf config.ProviderConfig) []providerapi.Credentials {
	result := make([]providerapi.Credentials, 0, len(conf.Accounts))
	for _, account := range conf.Accounts {
		result = append(result, providerapi.Credentials{
			Username:    account.Username,
			Password:    account.Password,
			Environment: string(account.Environment),
			StoreID:     account.StoreID,
			Country:     account.Country,
		})
	}
	return result
}

func (s *serviceInteractor) accountFor(credentialKey string) (providerapi.Credentials, bool) {
	for _, account := range s.accounts {
		if account.Key() == credentialKey {
			return account, true
		}
	}
	return providerapi.Credentials{}, false
}
