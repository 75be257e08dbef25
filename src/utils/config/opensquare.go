package config

import (
	"time"

	"github.com/spf13/viper"
)

type OpenSquare struct {
	// Voting platform API
	Endpoint string

	// Space the proposals are published into
	Space string

	// Secret phrase of the publishing identity. Either a BIP39
	// mnemonic or a 0x-prefixed 32 byte hex seed.
	SecretPhrase string

	// Reference chain of the published proposals
	Network string

	// SS58 prefix used for the signer address
	Ss58Prefix uint16

	// Token symbol and decimals put into networksConfig
	Symbol   string
	Decimals uint8

	// Accounts allowed to vote
	Whitelist []string

	// Voting strategies, e.g. one-person-one-vote
	Strategies []string

	// Vote choices offered on every proposal
	Choices []string

	// How long published proposals stay open for voting
	VotingPeriod time.Duration

	RequestTimeout time.Duration
}

func setOpenSquareDefaults() {
	viper.SetDefault("OpenSquare.Endpoint", "https://voting.opensquare.io")
	viper.SetDefault("OpenSquare.Space", "")
	viper.SetDefault("OpenSquare.SecretPhrase", "")
	viper.SetDefault("OpenSquare.Network", "polkadot")
	viper.SetDefault("OpenSquare.Ss58Prefix", "0")
	viper.SetDefault("OpenSquare.Symbol", "DOT")
	viper.SetDefault("OpenSquare.Decimals", "10")
	viper.SetDefault("OpenSquare.Whitelist", "")
	viper.SetDefault("OpenSquare.Strategies", "one-person-one-vote")
	viper.SetDefault("OpenSquare.Choices", "Aye,Nay,Abstain")
	viper.SetDefault("OpenSquare.VotingPeriod", "720h")
	viper.SetDefault("OpenSquare.RequestTimeout", "30s")
}
