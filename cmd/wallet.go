package cmd

import (
	"github.com/camly/cli/lib/auth"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/wallet"
	"github.com/urfave/cli/v2"
)

// Print the connected wallet addresses and their on-chain CAMLY balances.
func Wallet(c *cli.Context) error {
	auth.HasToken()

	var bridge wallet.Provider = wallet.Bridge{}

	if chainID := c.String("chain"); chainID != "" {
		if err := bridge.SwitchChain(chainID); err != nil {
			return err
		}
		console.Verbose("Switched to chain %s", chainID)
	}

	addresses, err := bridge.RequestAccounts()
	if err != nil {
		return err
	}

	if len(addresses) == 0 {
		console.Info("No wallet connected. Connect one from your account page.")
		return nil
	}

	for _, address := range addresses {
		balance, err := bridge.GetBalance(address)
		if err != nil {
			return err
		}

		console.Info("%s: %s CAMLY (chain %s)", balance.Address, balance.Balance, balance.ChainID)
	}

	return nil
}
