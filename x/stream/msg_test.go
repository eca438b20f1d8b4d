package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/streamtest"
)

func TestCreateStreamMsgValidate(t *testing.T) {
	valid := func() CreateStreamMsg {
		return CreateStreamMsg{
			Creator:        streamtest.NewAddress(),
			Treasury:       streamtest.NewAddress(),
			InTicker:       "ATM",
			OutTicker:      "OSM",
			OutAmount:      10000,
			BootstrapStart: 100,
			StreamStart:    200,
			StreamEnd:      300,
		}
	}

	msg := valid()
	assert.NoError(t, msg.Validate())

	cases := map[string]struct {
		mod     func(*CreateStreamMsg)
		wantErr *errors.Error
	}{
		"missing creator": {
			mod:     func(m *CreateStreamMsg) { m.Creator = nil },
			wantErr: errors.ErrEmpty,
		},
		"bad in ticker": {
			mod:     func(m *CreateStreamMsg) { m.InTicker = "x" },
			wantErr: errors.ErrInput,
		},
		"same tickers": {
			mod:     func(m *CreateStreamMsg) { m.OutTicker = m.InTicker },
			wantErr: errors.ErrInput,
		},
		"zero amount": {
			mod:     func(m *CreateStreamMsg) { m.OutAmount = 0 },
			wantErr: errors.ErrAmount,
		},
		"milestones out of order": {
			mod:     func(m *CreateStreamMsg) { m.StreamEnd = 150 },
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			msg := valid()
			tc.mod(&msg)
			assert.True(t, tc.wantErr.Is(msg.Validate()))
		})
	}
}

func TestStreamIDValidation(t *testing.T) {
	deposit := DepositMsg{StreamID: nil, Amount: 5}
	assert.True(t, errors.ErrEmpty.Is(deposit.Validate()))

	deposit = DepositMsg{StreamID: []byte("too-short"), Amount: 5}
	assert.True(t, errors.ErrInput.Is(deposit.Validate()))

	deposit = DepositMsg{StreamID: streamtest.SequenceID(1), Amount: 5}
	assert.NoError(t, deposit.Validate())
}

func TestDepositMsgValidate(t *testing.T) {
	msg := DepositMsg{StreamID: streamtest.SequenceID(1), Amount: 0}
	assert.True(t, errors.ErrAmount.Is(msg.Validate()))
	msg.Amount = -1
	assert.True(t, errors.ErrAmount.Is(msg.Validate()))
}

func TestWithdrawMsgValidate(t *testing.T) {
	// Zero means withdraw everything.
	msg := WithdrawMsg{StreamID: streamtest.SequenceID(1), Amount: 0}
	assert.NoError(t, msg.Validate())
	msg.Amount = -1
	assert.True(t, errors.ErrAmount.Is(msg.Validate()))
}

func TestMsgPaths(t *testing.T) {
	paths := map[tide.Msg]string{
		&CreateStreamMsg{}:   "stream/create",
		&DepositMsg{}:        "stream/deposit",
		&WithdrawMsg{}:       "stream/withdraw",
		&SyncStreamMsg{}:     "stream/sync",
		&ExitStreamMsg{}:     "stream/exit",
		&FinalizeStreamMsg{}: "stream/finalize",
		&CancelStreamMsg{}:   "stream/cancel",
	}
	for msg, want := range paths {
		assert.Equal(t, want, msg.Path())
	}
}
