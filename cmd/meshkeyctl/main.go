// Command meshkeyctl decodes and prints a registry snapshot produced by
// package diagapi, the way an operator would inspect a running meshkeyd's
// dumped diagnostic state. The RPC transport that fetches the dump from a
// live daemon is out of scope (spec.md §1); this tool accepts the encoded
// bytes from a file or stdin.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/drep-project/meshlink/diagapi"
)

func main() {
	app := cli.NewApp()
	app.Name = "meshkeyctl"
	app.Usage = "inspect a meshkeyd node-registry snapshot"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "in",
			Usage: "path to a diagapi-encoded snapshot file; \"-\" reads stdin",
			Value: "-",
		},
	}
	app.Action = dump

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dump(ctx *cli.Context) error {
	path := ctx.String("in")

	var payload []byte
	var err error
	if path == "-" {
		payload, err = ioutil.ReadAll(os.Stdin)
	} else {
		payload, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return err
	}

	snap, err := diagapi.Unmarshal(payload)
	if err != nil {
		return err
	}

	fmt.Printf("self: %s\n", snap.SelfName)
	for _, n := range snap.Nodes {
		fmt.Printf("  %-20s valid_key=%-5t waiting=%-5t cipher=%d digest=%d mac=%d compression=%d\n",
			n.Name, n.ValidKey, n.WaitingForKey, n.CipherId, n.DigestId, n.MacLength, n.Compression)
	}
	return nil
}
