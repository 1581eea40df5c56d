package main

import (
	"context"
	"flag"
	"os"

	"hotposts/app"

	"github.com/jfk9w-go/flu"
	"github.com/sirupsen/logrus"
)

var GitCommit = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	inputs := make([]flu.Input, 0, 1)
	if *configPath != "" {
		inputs = append(inputs, flu.File(*configPath))
	}

	config, err := app.CollectConfig("HOTPOSTS_", inputs...)
	if err != nil {
		logrus.Fatalf("collect config: %s", err)
	}

	instance := app.Create(GitCommit, config)
	defer flu.CloseQuietly(instance)

	if err := instance.ConfigureLogging(); err != nil {
		logrus.Fatalf("configure logging: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher, err := instance.GetFetcher(ctx)
	if err != nil {
		logrus.Fatalf("create fetcher: %s", err)
	}

	// per-subreddit failures are rendered as the sentinel line,
	// never as a non-zero exit
	for _, subreddit := range flag.Args() {
		result := fetcher.Fetch(ctx, subreddit)
		if err := result.Print(os.Stdout); err != nil {
			logrus.Fatalf("print result: %s", err)
		}
	}
}
