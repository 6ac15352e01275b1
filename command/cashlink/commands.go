// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/cashlink/chain"
	"github.com/bitmark-inc/cashlink/keypair"
	"github.com/bitmark-inc/cashlink/link"
)

type keygenReply struct {
	Seed        string `json:"seed"`
	PublicKey   string `json:"publicKey"`
	LiveAddress string `json:"liveAddress"`
	TestAddress string `json:"testAddress"`
}

func runKeygen(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	keys, err := keypair.New()
	if nil != err {
		return err
	}

	return printJson(m.w, keygenReply{
		Seed:        hex.EncodeToString(keys.Seed()),
		PublicKey:   hex.EncodeToString(keys.PublicKey()),
		LiveAddress: keys.Address().Encode(chain.IsTesting(chain.Live)),
		TestAddress: keys.Address().Encode(chain.IsTesting(chain.Test)),
	})
}

type creditReply struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Height  uint64 `json:"height"`
}

func runCredit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount must be greater than zero")
	}

	address, err := selectAddress(m, c.String("address"), c.String("seed"))
	if nil != err {
		return err
	}

	head, err := m.node.Credit(address, amount)
	if nil != err {
		return err
	}

	snapshot, _, err := m.node.Account(m.ctx, address)
	if nil != err {
		return err
	}

	return printJson(m.w, creditReply{
		Address: address.Encode(m.node.IsTesting()),
		Balance: snapshot.Balance,
		Height:  head.Height,
	})
}

func runCreate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	value := c.Uint64("value")
	message := c.String("message")

	l, err := link.Create(linkConfig(m))
	if nil != err {
		return err
	}
	defer l.Close()

	if err := l.SetValue(value); nil != err {
		return err
	}
	if err := l.SetMessage(message); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "value: %d\n", value)
		fmt.Fprintf(m.e, "message: %q\n", message)
	}

	return printJson(m.w, describe(m, l))
}

func runShow(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	l, err := openLink(m, c.String("link"))
	if nil != err {
		return err
	}
	defer l.Close()

	d := describe(m, l)

	confirmed, err := l.Amount(m.ctx, false)
	if nil != err {
		return err
	}
	unconfirmed, err := l.Amount(m.ctx, true)
	if nil != err {
		return err
	}
	emptied, err := l.WasEmptied(m.ctx)
	if nil != err {
		return err
	}

	d.Confirmed = &confirmed
	d.Unconfirmed = &unconfirmed
	d.Emptied = &emptied
	d.State = l.State().String()

	return printJson(m.w, d)
}

type transferReply struct {
	Id        string `json:"id"`
	Value     uint64 `json:"value"`
	Fee       uint64 `json:"fee"`
	Confirmed bool   `json:"confirmed"`
}

func runFund(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	l, err := openLink(m, c.String("link"))
	if nil != err {
		return err
	}
	defer l.Close()

	sender, err := keypair.FromHex(c.String("seed"))
	if nil != err {
		return fmt.Errorf("seed: %w", err)
	}

	value := l.Value()
	fee := c.Uint64("fee")
	if 0 == fee {
		fee = l.SuggestedFee(value)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "sender: %s\n", sender.Address().Encode(m.node.IsTesting()))
		fmt.Fprintf(m.e, "value: %d  fee: %d\n", value, fee)
	}

	tx, err := l.Fund(m.ctx, sender, fee)
	if nil != err {
		return err
	}

	reply := transferReply{
		Id:    tx.Id().String(),
		Value: tx.Value,
		Fee:   tx.Fee,
	}

	if !c.Bool("no-confirm") {
		if _, _, err := m.node.Mine(); nil != err {
			return err
		}
		reply.Confirmed = true
	}

	return printJson(m.w, reply)
}

func runClaim(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	l, err := openLink(m, c.String("link"))
	if nil != err {
		return err
	}
	defer l.Close()

	recipient, err := parseAddress(m, c.String("to"))
	if nil != err {
		return err
	}

	fee := c.Uint64("fee")
	if 0 == fee {
		balance, err := l.Amount(m.ctx, false)
		if nil != err {
			return err
		}
		fee = l.SuggestedFee(balance)
	}

	tx, err := l.Claim(m.ctx, recipient, fee)
	if nil != err {
		return err
	}

	reply := transferReply{
		Id:    tx.Id().String(),
		Value: tx.Value,
		Fee:   tx.Fee,
	}

	if !c.Bool("no-confirm") {
		if _, _, err := m.node.Mine(); nil != err {
			return err
		}
		reply.Confirmed = true
	}

	return printJson(m.w, reply)
}

type amountReply struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// all tokens are queried concurrently, the first failure stops the rest
func runAmount(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	tokens := c.Args()
	if 0 == len(tokens) {
		return fmt.Errorf("at least one link token is required")
	}
	includeUnconfirmed := c.Bool("unconfirmed")

	replies := make([]amountReply, len(tokens))

	g, ctx := errgroup.WithContext(m.ctx)
	for i, token := range tokens {
		i, token := i, token
		g.Go(func() error {
			l, err := openLink(m, token)
			if nil != err {
				return err
			}
			defer l.Close()

			amount, err := l.Amount(ctx, includeUnconfirmed)
			if nil != err {
				return err
			}
			replies[i] = amountReply{
				Address: l.Address().Encode(m.node.IsTesting()),
				Amount:  amount,
			}
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return err
	}

	return printJson(m.w, replies)
}
