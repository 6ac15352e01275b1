// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link_test

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/fee"
	"github.com/bitmark-inc/cashlink/keypair"
	"github.com/bitmark-inc/cashlink/link"
)

func TestMissingCollaborator(t *testing.T) {
	_, err := link.Create(link.Config{})
	assert.Equal(t, fault.ErrMissingCollaborator, err, "error")
}

func TestInvalidFeePolicy(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	cfg := newMockNet(ctl).config()
	cfg.Fees = fee.Policy{Rate: 2 * fee.PartsPerMillion}
	_, err := link.Create(cfg)
	assert.Equal(t, fault.ErrInvalidFeePolicy, err, "error")
}

func TestRenderParse(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	cfg := newMockNet(ctl).config()

	keys, err := keypair.New()
	require.Nil(t, err, "keys")

	l, err := link.New(cfg, keys, 42, "hi")
	require.Nil(t, err, "new")
	defer l.Close()

	token := l.Render()
	assert.False(t, strings.Contains(token, "="), "token contains '='")

	p := link.Parse(cfg, token)
	require.NotNil(t, p, "parse")
	defer p.Close()

	assert.True(t, keys.Equal(p.Keys()), "keys")
	assert.Equal(t, l.Address(), p.Address(), "address")
	assert.Equal(t, keys.PublicKey(), p.PublicKey(), "public key")
	assert.Equal(t, uint64(42), p.Value(), "value")
	assert.Equal(t, "hi", p.Message(), "message")
	assert.True(t, p.Immutable(), "parsed link mutable")
	assert.Equal(t, link.Created, p.State(), "state")
}

func TestParseVariants(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	cfg := newMockNet(ctl).config()

	keys, _ := keypair.New()
	l, err := link.New(cfg, keys, 7, "a message that is long enough to wrap")
	require.Nil(t, err, "new")
	defer l.Close()

	token := l.Render()

	// chunked in transit
	chunked := ""
	for i := 0; i < len(token); i += 10 {
		end := i + 10
		if end > len(token) {
			end = len(token)
		}
		chunked += token[i:end] + "\n "
	}

	variants := map[string]string{
		"rendered":  token,
		"padding":   strings.ReplaceAll(token, ".", "="),
		"unpadded":  strings.TrimRight(token, "."),
		"chunked":   chunked,
		"surrounds": "  " + token + "\t",
	}
	for name, v := range variants {
		p := link.Parse(cfg, v)
		if !assert.NotNilf(t, p, "%s: parse", name) {
			continue
		}
		assert.Equalf(t, uint64(7), p.Value(), "%s: value", name)
		assert.Equalf(t, l.Message(), p.Message(), "%s: message", name)
		assert.Truef(t, keys.Equal(p.Keys()), "%s: keys", name)
		p.Close()
	}
}

func TestParseMalformed(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	cfg := newMockNet(ctl).config()

	keys, _ := keypair.New()
	l, _ := link.New(cfg, keys, 1, "xyz")
	defer l.Close()
	token := l.Render()

	items := []string{
		"",
		"!!!!",
		"AAAA",
		token[:20],
		token + "AAAA",
	}
	for i, item := range items {
		assert.Nilf(t, link.Parse(cfg, item), "%d: %q parsed", i, item)
	}
}

func TestImmutable(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	cfg := newMockNet(ctl).config()

	keys, _ := keypair.New()

	withValue, err := link.New(cfg, keys, 42, "")
	require.Nil(t, err, "new")
	defer withValue.Close()

	assert.Equal(t, fault.ErrImmutableLink, withValue.SetValue(43), "set value")
	assert.Equal(t, fault.ErrImmutableLink, withValue.SetMessage("x"), "set message")
	assert.Equal(t, uint64(42), withValue.Value(), "value")

	withMessage, err := link.New(cfg, keys, 0, "hello")
	require.Nil(t, err, "new")
	defer withMessage.Close()

	assert.Equal(t, fault.ErrImmutableLink, withMessage.SetValue(1), "set value")
	assert.Equal(t, "hello", withMessage.Message(), "message")
}

func TestMutable(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l, err := link.Create(newMockNet(ctl).config())
	require.Nil(t, err, "create")
	defer l.Close()

	assert.False(t, l.Immutable(), "immutable")
	assert.Equal(t, fault.ErrMalformedValue, l.SetValue(0), "zero value")
	assert.Nil(t, l.SetValue(100), "set value")
	assert.Nil(t, l.SetValue(101), "change value")
	assert.Equal(t, uint64(101), l.Value(), "value")

	assert.Nil(t, l.SetMessage("thanks"), "set message")
	assert.Equal(t, "thanks", l.Message(), "message")

	assert.Equal(t, fault.ErrMessageTooLong, l.SetMessage(strings.Repeat("x", link.MaxMessageLength+1)), "long message")
	assert.Nil(t, l.SetMessage(strings.Repeat("x", link.MaxMessageLength)), "longest message")
	assert.Equal(t, fault.ErrMessageNotUTF8, l.SetMessage("\xff\xfe"), "not utf-8")
}

func TestNewRejectsBadMessage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	keys, _ := keypair.New()
	_, err := link.New(newMockNet(ctl).config(), keys, 1, strings.Repeat("y", 256))
	assert.Equal(t, fault.ErrMessageTooLong, err, "error")
}

func TestSuggestedFee(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l, err := link.Create(newMockNet(ctl).config())
	require.Nil(t, err, "create")
	defer l.Close()

	f := fee.Default()
	for _, total := range []uint64{3, 100, 2002, 1000000, 500000000} {
		net, expected := f.Split(total)
		assert.Equalf(t, expected, l.SuggestedFee(total), "total: %d", total)
		assert.Equalf(t, total, net+expected, "total: %d", total)
	}
}

func TestCloseTwice(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l, err := link.Create(newMockNet(ctl).config())
	require.Nil(t, err, "create")
	l.Close()
	l.Close()

	_, err = l.Amount(context.Background(), false)
	assert.Equal(t, fault.ErrLinkClosed, err, "amount after close")
}
