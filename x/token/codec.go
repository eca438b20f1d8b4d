package token

import (
	amino "github.com/tendermint/go-amino"

	tide "github.com/iov-one/tide"
)

var cdc = amino.NewCodec()

// Info describes a single registered token.
type Info struct {
	// Name is a human readable token name.
	Name string
	// Decimals is the number of fractional digits of the base unit,
	// so one whole token is 10^Decimals base units.
	Decimals uint32
}

var _ tide.Persistent = (*Info)(nil)

func (i *Info) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(i)
}

func (i *Info) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, i)
}

// RegisterTokenMsg will make given ticker known to the engine.
type RegisterTokenMsg struct {
	Ticker   string
	Name     string
	Decimals uint32
}

var _ tide.Msg = (*RegisterTokenMsg)(nil)

func (m *RegisterTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RegisterTokenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
