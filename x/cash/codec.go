package cash

import (
	amino "github.com/tendermint/go-amino"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
)

var cdc = amino.NewCodec()

// Set keeps the wallet content, the full token balance of one address.
type Set struct {
	Coins coin.Coins
}

var _ tide.Persistent = (*Set)(nil)

func (s *Set) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// SendMsg requests a token transfer between two wallets.
type SendMsg struct {
	Src    tide.Address
	Dest   tide.Address
	Amount coin.Coin
	// Memo is a free text comment, limited in length.
	Memo string
}

var _ tide.Msg = (*SendMsg)(nil)

func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
