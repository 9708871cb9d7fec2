package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Cloud-Foundations/ptrsync/pkg/awsutil/identity"
	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
	"github.com/Cloud-Foundations/ptrsync/pkg/invoke"
	"github.com/Cloud-Foundations/ptrsync/pkg/log/envlogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
	"github.com/aws/aws-lambda-go/lambda"
)

func doMain() int {
	logger := envlogger.New(envlogger.GetStandardOptions())
	ctx := context.Background()
	cfg, err := config.Load(ctx, os.Getenv(constants.ConfigFileVariable),
		logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	identity.Log(ctx, nil, logger)
	handler := invoke.NewSyncHandler(cfg, invoke.SyncParams{Logger: logger})
	lambda.Start(handler.Handle)
	return 0
}

func main() {
	os.Exit(doMain())
}
