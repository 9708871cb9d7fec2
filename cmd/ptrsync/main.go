package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Cloud-Foundations/Dominator/lib/flags/commands"
	"github.com/Cloud-Foundations/Dominator/lib/flags/loadflags"
	"github.com/Cloud-Foundations/Dominator/lib/log/cmdlogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
)

var (
	configFile = flag.String("configFile", "",
		"Name of file containing configuration")
	dryRun = flag.Bool("dryRun", false,
		"If true, log PTR record changes instead of making them")
	metricsFile = flag.String("metricsFile", "",
		"If specified, write metrics to this file (node exporter format)")
	nameserver = flag.String("nameserver", "",
		"Nameserver to send lookups to (default: system resolver)")

	cfgData config.Config
)

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "Usage: ptrsync [flags...] command [args...]")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Commands:")
	commands.PrintCommands(w, subcommands)
}

var subcommands = []commands.Command{
	{Command: "lookup", Args: "ip...", MinArgs: 1, MaxArgs: -1,
		CmdFunc: lookupSubcommand},
	{Command: "reverse-name", Args: "ip...", MinArgs: 1, MaxArgs: -1,
		CmdFunc: reverseNameSubcommand},
	{Command: "sync", Args: "[region...]", MinArgs: 0, MaxArgs: -1,
		CmdFunc: syncSubcommand},
}

func doMain() int {
	if err := loadflags.LoadForCli("ptrsync"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	flag.Usage = printUsage
	flag.Parse()
	logger := cmdlogger.New()
	var err error
	cfgData, err = config.Load(context.Background(), *configFile, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *dryRun {
		cfgData.DryRun = true
	}
	if *nameserver != "" {
		cfgData.Nameserver = *nameserver
	}
	return commands.RunCommands(subcommands, printUsage, logger)
}

func main() {
	os.Exit(doMain())
}
