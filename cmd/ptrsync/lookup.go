package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns/reverse"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
)

func lookupSubcommand(args []string, logger log.DebugLogger) error {
	client := config.NewLookup(cfgData, logger)
	for _, address := range args {
		result, err := client.Lookup(context.Background(), address)
		if err != nil {
			return fmt.Errorf("error looking up: %s: %s", address, err)
		}
		fmt.Printf("%s\t%s\n", result.IpAddress,
			strings.Join(append([]string{result.Host}, result.Aliases...),
				" "))
	}
	return nil
}

func reverseNameSubcommand(args []string, logger log.DebugLogger) error {
	for _, address := range args {
		name, err := reverse.Name(address)
		if err != nil {
			return err
		}
		fmt.Println(name)
	}
	return nil
}
