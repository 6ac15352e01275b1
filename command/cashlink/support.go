// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/keypair"
	"github.com/bitmark-inc/cashlink/link"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

type linkReply struct {
	Token        string  `json:"token"`
	Address      string  `json:"address"`
	Value        uint64  `json:"value"`
	Message      string  `json:"message,omitempty"`
	Immutable    bool    `json:"immutable"`
	SuggestedFee uint64  `json:"suggestedFee"`
	Confirmed    *uint64 `json:"confirmed,omitempty"`
	Unconfirmed  *uint64 `json:"unconfirmed,omitempty"`
	Emptied      *bool   `json:"emptied,omitempty"`
	State        string  `json:"state,omitempty"`
}

func describe(m *metadata, l *link.Link) *linkReply {
	return &linkReply{
		Token:        l.Render(),
		Address:      l.Address().Encode(m.node.IsTesting()),
		Value:        l.Value(),
		Message:      l.Message(),
		Immutable:    l.Immutable(),
		SuggestedFee: l.SuggestedFee(l.Value()),
	}
}

func openLink(m *metadata, token string) (*link.Link, error) {
	if "" == token {
		return nil, fmt.Errorf("link token is required")
	}
	l := link.Parse(linkConfig(m), token)
	if nil == l {
		return nil, fault.ErrInvalidLink
	}
	return l, nil
}

// decode an address and check it belongs to the configured chain
func parseAddress(m *metadata, s string) (account.Address, error) {
	if "" == s {
		return account.Address{}, fault.ErrCannotDecodeAddress
	}
	address, testing, err := account.AddressFromBase58(s)
	if nil != err {
		return account.Address{}, err
	}
	if testing != m.node.IsTesting() {
		return account.Address{}, fault.ErrWrongNetworkForAddress
	}
	return address, nil
}

// exactly one of address or seed
func selectAddress(m *metadata, address string, seed string) (account.Address, error) {
	switch {
	case "" != address && "" == seed:
		return parseAddress(m, address)
	case "" == address && "" != seed:
		keys, err := keypair.FromHex(seed)
		if nil != err {
			return account.Address{}, err
		}
		return keys.Address(), nil
	default:
		return account.Address{}, fmt.Errorf("select one of address or seed")
	}
}
