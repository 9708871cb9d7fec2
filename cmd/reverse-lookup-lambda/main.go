package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
	"github.com/Cloud-Foundations/ptrsync/pkg/invoke"
	"github.com/Cloud-Foundations/ptrsync/pkg/log/envlogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
	"github.com/aws/aws-lambda-go/lambda"
)

func doMain() int {
	logger := envlogger.New(envlogger.GetStandardOptions())
	cfg, err := config.Load(context.Background(),
		os.Getenv(constants.ConfigFileVariable), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	handler := invoke.NewLookupHandler(config.NewLookup(cfg, logger), logger)
	lambda.Start(handler.Handle)
	return 0
}

func main() {
	os.Exit(doMain())
}
