package models

// Response body for the `wallet/accounts` route.
type WalletAccountsResponse struct {
	Addresses []string `json:"addresses"`
}

// Response body for the `wallet/balance` route.
type WalletBalanceResponse struct {
	Address string `json:"address"`
	ChainID string `json:"chain_id"`
	// Balance in CAMLY, as a decimal string to avoid float drift on-chain.
	Balance string `json:"balance"`
}
