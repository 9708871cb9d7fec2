package main

import (
	"context"
	"fmt"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/awsutil/identity"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync/config"
	"github.com/prometheus/client_golang/prometheus"
)

func syncSubcommand(args []string, logger log.DebugLogger) error {
	if err := syncPtrRecords(args, logger); err != nil {
		return fmt.Errorf("error synchronizing PTR records: %s", err)
	}
	return nil
}

func logIdentity(ctx context.Context, logger log.DebugLogger) {
	client, err := identity.NewClient(ctx, cfgData.AwsProfile)
	if err != nil {
		logger.Printf("unable to create STS client: %s\n", err)
		return
	}
	identity.Log(ctx, client, logger)
	if cfgData.AwsAssumeRoleArn != "" {
		logger.Printf("assuming role: %s\n", cfgData.AwsAssumeRoleArn)
	}
}

func syncPtrRecords(regions []string, logger log.DebugLogger) error {
	ctx := context.Background()
	cfg := cfgData
	if len(regions) > 0 {
		cfg.Regions = regions
	}
	logIdentity(ctx, logger)
	registry := prometheus.NewRegistry()
	synchronizer, err := config.NewSynchronizer(cfg, config.Params{
		Logger:     logger,
		Registerer: registry,
	})
	if err != nil {
		return err
	}
	summary, runErr := synchronizer.Run(ctx, cfg.Scopes())
	if *metricsFile != "" {
		if err := prometheus.WriteToTextfile(*metricsFile, registry); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	fmt.Println(summary)
	return nil
}
