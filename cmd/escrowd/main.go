package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	escrowd "github.com/iov-one/custody/cmd/escrowd/app"
	"github.com/iov-one/custody/commands"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("escrowd")
	fmt.Println("          Two party token escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that genesis files can be loaded")
	fmt.Println("getblock  Extract a block from blockstore.db")
	fmt.Println("keys      Create or inspect a signing key")
	fmt.Println("tx        Build and sign a transaction")
	fmt.Println("testgen   Write example encodings for client tests")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.escrowd")`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	if err := run(cmd, rest); err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	switch cmd {
	case "help":
		helpMessage()
		return nil
	case "init", "start":
		conf, err := LoadConfig(*varHome)
		if err != nil {
			return err
		}
		logger, err := conf.Logger()
		if err != nil {
			return err
		}
		if cmd == "init" {
			return server.InitCmd(escrowd.GenInitOptions, logger, *varHome, args)
		}
		return server.StartCmd(escrowd.GenerateApp, logger, *varHome, conf.StartConfig(), args)
	case "validate":
		return server.ValidateGenesisCmd(escrowd.Initializers(), args)
	case "getblock":
		return server.GetBlockCmd(args)
	case "keys":
		return keysCmd(args)
	case "tx":
		return txCmd(args)
	case "testgen":
		return commands.TestGenCmd(escrowd.Examples(), args)
	case "version":
		fmt.Println(custody.Version())
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}
}
