// Command meshkeyd runs the key-exchange daemon as a standalone process,
// for local experimentation and tests against package daemon. A real
// deployment embeds package daemon directly inside a host process that
// owns the meta-connection transport (spec.md §1 draws that transport
// boundary); this binary only exercises the self-node bootstrap path.
package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/drep-project/meshlink/cipherset"
	"github.com/drep-project/meshlink/daemon"
	"github.com/drep-project/meshlink/meshnode"
	"github.com/drep-project/meshlink/router"
)

var (
	NameFlag = cli.StringFlag{
		Name:  "name",
		Usage: "this node's name in the mesh",
		Value: "self",
	}
	HomeDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "base directory for daemon state",
		Value: "./meshkeyd-data",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "meshkeyd"
	app.Usage = "packet-key exchange daemon"
	_, flags := daemon.CommandFlags()
	app.Flags = append([]cli.Flag{NameFlag, HomeDirFlag}, flags...)
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	log := logrus.NewEntry(logrus.New())

	selfName := ctx.String(NameFlag.Name)
	homeDir := ctx.String(HomeDirFlag.Name)

	selfKey := make([]byte, 32+16) // AES-256-CTR key + IV, per cipherset.CipherAES256CTR
	if _, err := rand.Read(selfKey); err != nil {
		return err
	}

	registry := meshnode.NewRegistry(selfName, "localhost", selfKey, cipherset.CipherAES256CTR)
	rtr := router.New(registry, log)
	cfg := daemon.FromContext(ctx, homeDir, selfName)

	svc := daemon.New(cfg, registry, rtr, nil, log)
	if err := svc.Init(); err != nil {
		return err
	}
	if err := svc.Start(); err != nil {
		return err
	}
	log.WithField("name", selfName).Info("meshkeyd running; interrupt to stop")

	select {} // the transport and signal handling that would feed svc.Inbound/ReqKeys is out of scope
}
