// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/cashlink/configuration"
	"github.com/bitmark-inc/cashlink/devnet"
	"github.com/bitmark-inc/cashlink/link"
)

type metadata struct {
	config  *configuration.Configuration
	node    *devnet.Node
	log     *logger.L
	ctx     context.Context
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	app.Name = "cashlink"
	app.Usage = "create, fund and claim transfer links"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "cashlink.conf",
			Usage: " Lua configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate a key pair, the seed is printed and not stored",
			Action: runKeygen,
		},
		{
			Name:      "credit",
			Usage:     "add funds to an account on the local ledger",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "+account `ADDRESS` to credit",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "+hex `SEED` of the account to credit",
				},
				cli.Uint64Flag{
					Name:  "amount, n",
					Value: 0,
					Usage: "*amount to add `NUMBER`",
				},
			},
			Action: runCredit,
		},
		{
			Name:      "create",
			Usage:     "create a new link",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "value, n",
					Value: 0,
					Usage: "*value of the link `NUMBER`",
				},
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: " text carried by the link `STRING`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "show",
			Usage:     "decode a link and display its state",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "link, l",
					Value: "",
					Usage: "*link `TOKEN`",
				},
			},
			Action: runShow,
		},
		{
			Name:      "fund",
			Usage:     "fund a link from an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "link, l",
					Value: "",
					Usage: "*link `TOKEN`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "*hex `SEED` of the funding account",
				},
				cli.Uint64Flag{
					Name:  "fee, f",
					Value: 0,
					Usage: " fee `NUMBER` (default is the suggested fee)",
				},
				cli.BoolFlag{
					Name:  "no-confirm",
					Usage: " leave the transaction unconfirmed",
				},
			},
			Action: runFund,
		},
		{
			Name:      "claim",
			Usage:     "move the balance of a link to an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "link, l",
					Value: "",
					Usage: "*link `TOKEN`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*receiving account `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "fee, f",
					Value: 0,
					Usage: " fee `NUMBER` (default is the suggested fee)",
				},
				cli.BoolFlag{
					Name:  "no-confirm",
					Usage: " leave the transaction unconfirmed",
				},
			},
			Action: runClaim,
		},
		{
			Name:      "amount",
			Usage:     "display the balance of one or more links",
			ArgsUsage: "TOKEN...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "unconfirmed, u",
					Usage: " include unconfirmed transactions",
				},
			},
			Action: runAmount,
		},
		{
			Name:  "version",
			Usage: "display cashlink version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration, start logging and open the ledger
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		switch c.Args().Get(0) {
		case "", "version", "keygen", "help", "h":
			c.App.Metadata["config"] = &metadata{
				ctx:     ctx,
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		theConfiguration, err := configuration.Get(file)
		if nil != err {
			return fmt.Errorf("configuration: %q  error: %w", file, err)
		}

		if err := logger.Initialise(theConfiguration.Logging); nil != err {
			return fmt.Errorf("logger setup failed with error: %w", err)
		}

		log := logger.New("main")
		log.Info("starting…")
		log.Infof("version: %s", version)
		log.Debugf("configuration: %+v", theConfiguration)

		node, err := devnet.New(devnet.Config{
			Database:    theConfiguration.Database,
			Chain:       theConfiguration.Chain,
			RelayRate:   theConfiguration.RelayLimit(),
			RelayBurst:  theConfiguration.Relay.Burst,
			Established: true,
		})
		if nil != err {
			log.Criticalf("devnet error: %s", err)
			logger.Finalise()
			return err
		}

		c.App.Metadata["config"] = &metadata{
			config:  theConfiguration,
			node:    node,
			log:     log,
			ctx:     ctx,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || nil == m.node {
			return nil
		}
		err := m.node.Close()
		m.log.Info("finished")
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}

// link settings from the configuration
func linkConfig(m *metadata) link.Config {
	cfg := link.Config{
		Accounts:         m.node,
		Consensus:        m.node,
		Mempool:          m.node,
		Blockchain:       m.node,
		Fees:             m.config.Fees(),
		RetryDelay:       m.config.RetryDelayDuration(),
		ConsensusTimeout: m.config.ConsensusTimeoutDuration(),
		CacheExpiry:      m.config.CacheExpiryDuration(),
	}
	if m.config.Nano() {
		cfg.Accounts = nil
	}
	return cfg
}
