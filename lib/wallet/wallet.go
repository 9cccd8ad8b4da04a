package wallet

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/camly/cli/lib/api"
	"github.com/camly/cli/lib/httpw"
	"github.com/camly/cli/models"
)

// Provider is the capability surface of the platform's wallet bridge.
// The CLI never holds keys or signs anything; all wallet operations go
// through the Camly API.
type Provider interface {
	RequestAccounts() ([]string, error)
	SwitchChain(chainID string) error
	GetBalance(address string) (models.WalletBalanceResponse, error)
}

// Bridge implements Provider against the Camly API's wallet routes.
type Bridge struct{}

var _ Provider = Bridge{}

// Returns the wallet addresses connected to the authenticated user's account.
func (Bridge) RequestAccounts() ([]string, error) {
	res, err := httpw.Get(api.BuildURL("wallet/accounts"))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var accounts models.WalletAccountsResponse
	err = json.NewDecoder(res.Body).Decode(&accounts)
	if err != nil {
		return nil, err
	}

	return accounts.Addresses, nil
}

// Request the wallet bridge to switch to the given chain.
func (Bridge) SwitchChain(chainID string) error {
	bodyJson, _ := json.Marshal(map[string]any{
		"chain_id": chainID,
	})
	res, err := httpw.Post(api.BuildURL("wallet/chain"), bytes.NewBuffer(bodyJson))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return nil
}

// Get the on-chain CAMLY balance for the given address.
func (Bridge) GetBalance(address string) (models.WalletBalanceResponse, error) {
	res, err := httpw.Get(api.BuildURLf("wallet/balance?address=%s", url.QueryEscape(address)))
	if err != nil {
		return models.WalletBalanceResponse{}, err
	}
	defer res.Body.Close()

	var balance models.WalletBalanceResponse
	err = json.NewDecoder(res.Body).Decode(&balance)
	if err != nil {
		return models.WalletBalanceResponse{}, err
	}

	return balance, nil
}
