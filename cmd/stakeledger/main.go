// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/api"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/metrics"
	"github.com/vechain/stakeledger/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

const ntpSyncInterval = 10 * time.Minute

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "StakeLedger"
	app.Usage = "Staking reward ledgers for fungible, non-fungible and multi tokens"
	app.Copyright = "2026 VeChain Foundation <https://vechain.org/>"
	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "run the ledgers behind the HTTP API",
			Flags: []cli.Flag{
				dataDirFlag,
				configFlag,
				persistFlag,
				apiAddrFlag,
				apiCorsFlag,
				apiLogsLimitFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				apiLog5xxErrorsFlag,
				verbosityFlag,
				jsonLogsFlag,
				ntpServerFlag,
				enableMetricsFlag,
			},
			Action: serveAction,
		},
		{
			Name:      "simulate",
			Usage:     "run a scenario against in-memory ledgers with a manual clock",
			ArgsUsage: "<scenario.yaml>",
			Flags: []cli.Flag{
				verbosityFlag,
				jsonLogsFlag,
			},
			Action: simulateAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	initLogger(os.Stdout, int(ctx.Uint64(verbosityFlag.Name)), ctx.Bool(jsonLogsFlag.Name))

	cfg := devConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = loadConfig(path); err != nil {
			return err
		}
	}
	genesis := cfg.Genesis()
	genesisID, err := genesis.ID()
	if err != nil {
		return err
	}

	instanceDir := ""
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, genesisID); err != nil {
			return err
		}
	}
	dbs, err := openDatabases(instanceDir)
	if err != nil {
		return err
	}
	defer dbs.Close()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	exitCtx := handleExitSignal()
	group, groupCtx := errgroup.WithContext(exitCtx)

	var clk clock.Clock = clock.System{}
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		ntpClock := clock.NewNTP(server)
		clk = ntpClock
		group.Go(func() error {
			ntpClock.Run(groupCtx, ntpSyncInterval)
			return nil
		})
	}

	rt, err := runtime.New(dbs.main, dbs.logs, clk, genesis)
	if err != nil {
		return err
	}

	reqLogger := &atomic.Bool{}
	reqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
		EnableReqLogger:      reqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
	})

	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	printStartupMessage(rt, genesisID.String(), instanceDir, "http://"+listener.Addr().String()+"/")
	return group.Wait()
}

func printStartupMessage(rt *runtime.Runtime, genesisID, instanceDir, apiURL string) {
	if instanceDir == "" {
		instanceDir = "Memory"
	}
	fmt.Printf(`Starting %v-%v
    Genesis      [ %v ]
    Ledgers      [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		"StakeLedger", fullVersion(),
		genesisID,
		len(rt.Ledgers()),
		instanceDir,
		apiURL)
}

func simulateAction(ctx *cli.Context) error {
	initLogger(os.Stderr, int(ctx.Uint64(verbosityFlag.Name)), ctx.Bool(jsonLogsFlag.Name))

	if ctx.NArg() != 1 {
		return errors.New("usage: simulate <scenario.yaml>")
	}
	sc, err := loadScenario(ctx.Args().First())
	if err != nil {
		return err
	}
	return sc.Run(os.Stdout)
}
