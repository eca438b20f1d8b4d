package stream

import (
	amino "github.com/tendermint/go-amino"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/decimal"
)

var cdc = amino.NewCodec()

// Stream is the global state of one distribution, the pot, the staked
// supply and the accounting counters advanced by every sync.
type Stream struct {
	// Creator may finalize the stream once ended.
	Creator tide.Address
	// Treasury funds the out pot and receives the proceeds.
	Treasury  tide.Address
	InTicker  string
	OutTicker string
	// InDecimals and OutDecimals are the native precisions captured
	// from the token registry at creation, used for price
	// normalization.
	InDecimals  uint32
	OutDecimals uint32

	// OutAmount is the size of the pot at creation. It never changes.
	OutAmount      int64
	BootstrapStart tide.UnixTime
	StreamStart    tide.UnixTime
	StreamEnd      tide.UnixTime
	Status         Status

	// OutRemaining only decreases, down from OutAmount.
	OutRemaining int64
	// InSupply is the staked input not yet spent into the distribution.
	InSupply int64
	// Shares is the total over all positions. Changed only by deposit
	// and withdraw, never by sync.
	Shares int64
	// DistIndex is the cumulative out-per-share counter. It never
	// decreases.
	DistIndex decimal.Decimal
	// SpentIn is the cumulative input consumed so far. It never
	// decreases.
	SpentIn int64
	// StreamedPrice is the price observed by the last sync that
	// distributed a positive amount.
	StreamedPrice decimal.Decimal
	LastUpdated   tide.UnixTime
}

var _ tide.Persistent = (*Stream)(nil)

func (s *Stream) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Stream) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// Position is one participant's stake in one stream.
type Position struct {
	Owner tide.Address
	// InBalance is the input still staked, not yet spent.
	InBalance int64
	Shares    int64
	// Index is the DistIndex snapshot of the last reconciliation. The
	// position is stale whenever Index < DistIndex.
	Index decimal.Decimal
	// PendingReward carries the sub-unit fraction of earned output
	// until it accumulates to a whole unit.
	PendingReward decimal.Decimal
	// SpentIn and Purchased are cumulative, they never decrease.
	SpentIn        int64
	Purchased      int64
	LastUpdateTime tide.UnixTime
	// ExitDate is zero until the position exited.
	ExitDate tide.UnixTime
}

var _ tide.Persistent = (*Position)(nil)

func (p *Position) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Position) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// CreateStreamMsg sets up a new stream and escrows the out pot.
type CreateStreamMsg struct {
	Creator        tide.Address
	Treasury       tide.Address
	InTicker       string
	OutTicker      string
	OutAmount      int64
	BootstrapStart tide.UnixTime
	StreamStart    tide.UnixTime
	StreamEnd      tide.UnixTime
}

var _ tide.Msg = (*CreateStreamMsg)(nil)

func (m *CreateStreamMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateStreamMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// DepositMsg stakes an amount of the in token into a stream.
type DepositMsg struct {
	StreamID []byte
	Amount   int64
}

var _ tide.Msg = (*DepositMsg)(nil)

func (m *DepositMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// WithdrawMsg releases unspent stake back to the participant. A zero
// amount withdraws the whole unspent balance.
type WithdrawMsg struct {
	StreamID []byte
	Amount   int64
}

var _ tide.Msg = (*WithdrawMsg)(nil)

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// SyncStreamMsg advances the global distribution state to the current
// block time. Anyone can send it at any time.
type SyncStreamMsg struct {
	StreamID []byte
}

var _ tide.Msg = (*SyncStreamMsg)(nil)

func (m *SyncStreamMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SyncStreamMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// ExitStreamMsg settles the sender's position of an ended or cancelled
// stream, paying out purchased tokens and refunding unspent stake.
type ExitStreamMsg struct {
	StreamID []byte
}

var _ tide.Msg = (*ExitStreamMsg)(nil)

func (m *ExitStreamMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ExitStreamMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// FinalizeStreamMsg closes an ended stream, sending the proceeds minus
// the exit fee to the treasury. Only the creator can send it.
type FinalizeStreamMsg struct {
	StreamID []byte
}

var _ tide.Msg = (*FinalizeStreamMsg)(nil)

func (m *FinalizeStreamMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *FinalizeStreamMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// CancelStreamMsg stops a stream before it goes active, returning the
// pot to the treasury. Only the configured admin can send it.
type CancelStreamMsg struct {
	StreamID []byte
}

var _ tide.Msg = (*CancelStreamMsg)(nil)

func (m *CancelStreamMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CancelStreamMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Configuration is the singleton gconf record of this package. The
// JSON tags are used when loading it from the genesis file.
type Configuration struct {
	// Admin may cancel streams.
	Admin tide.Address `json:"admin"`
	// FeeCollector receives the exit fee at finalization.
	FeeCollector tide.Address `json:"fee_collector"`
	// ExitFeeRatio is the fraction of the spent input charged at
	// finalization. Must not be greater than one.
	ExitFeeRatio decimal.Decimal `json:"exit_fee_ratio"`
	// Minimum lengths of the wait, bootstrap and active phases,
	// enforced at stream creation.
	MinWaitDuration      tide.UnixDuration `json:"min_wait_duration"`
	MinBootstrapDuration tide.UnixDuration `json:"min_bootstrap_duration"`
	MinStreamDuration    tide.UnixDuration `json:"min_stream_duration"`
}

var _ tide.Persistent = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}
