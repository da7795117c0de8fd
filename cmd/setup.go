package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/dashboard"
	"github.com/spigell/recruit-dashboard/internal/logger"
	"github.com/spigell/recruit-dashboard/internal/recruit"
	"github.com/spigell/recruit-dashboard/internal/workflow"
)

type services struct {
	logger  *zap.Logger
	config  *Config
	client  *recruit.Client
	console *dashboard.Console
}

// setup builds the logger, config and service client shared by all commands.
func setup() *services {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	client := recruit.New(logger.Named("client"), config.APIURL, config.Timeout)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return &services{
		logger:  logger,
		config:  config,
		client:  client,
		console: dashboard.NewConsole(os.Stdout),
	}
}

func (e *services) controller() *workflow.Controller {
	return workflow.New(e.client, e.logger.Named("workflow"), workflow.Options{
		SemanticWeight: e.config.SemanticWeight,
		Blind:          e.config.BlindMode,
		Notifier:       dashboard.NewNotifier(e.console, e.logger),
	})
}
