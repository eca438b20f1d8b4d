package x

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/streamtest"
)

func TestChainAuth(t *testing.T) {
	a := streamtest.NewCondition()
	b := streamtest.NewCondition()

	auth := ChainAuth(
		&streamtest.Auth{Signer: a},
		&streamtest.Auth{Signer: b},
	)
	ctx := context.Background()

	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, streamtest.NewAddress()))
	assert.Len(t, auth.GetConditions(ctx), 2)
}

func TestMainSigner(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, MainSigner(ctx, &streamtest.Auth{}))

	first := streamtest.NewCondition()
	auth := &streamtest.Auth{Signers: []tide.Condition{first, streamtest.NewCondition()}}
	assert.Equal(t, first, MainSigner(ctx, auth))
}

func TestGetAddresses(t *testing.T) {
	a := streamtest.NewCondition()
	b := streamtest.NewCondition()
	auth := &streamtest.Auth{Signers: []tide.Condition{a, b}}

	addrs := GetAddresses(context.Background(), auth)
	assert.Len(t, addrs, 2)
	assert.Equal(t, a.Address(), addrs[0])
	assert.Equal(t, b.Address(), addrs[1])
}
