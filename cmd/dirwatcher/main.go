package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dirwatcher/dirwatcher/bapps"
	"github.com/dirwatcher/dirwatcher/common"
	"github.com/dirwatcher/dirwatcher/configs"
	"github.com/dirwatcher/dirwatcher/directory"
	"github.com/dirwatcher/dirwatcher/logging"
	"github.com/dirwatcher/dirwatcher/states"
)

type rootOptions struct {
	oneLineCommand string
	simple         bool
	restServer     bool
	webPort        int
	configPath     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "dirwatcher",
		Short:        "interactive shell for an auditable key directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	bindAppFlags(root.Flags(), opts)
	root.PersistentFlags().StringVar(&opts.configPath, "config", configs.DefaultConfigPath, "config folder path")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(*cobra.Command, []string) {
			fmt.Println("dirwatcher Version", common.Version)
		},
	})
	return root
}

func bindAppFlags(flags *pflag.FlagSet, opts *rootOptions) {
	flags.StringVar(&opts.oneLineCommand, "olc", "", "one line command execution mode, commands separated by ','")
	flags.BoolVar(&opts.simple, "simple", false, "use simple ui without suggestion and history")
	flags.BoolVar(&opts.restServer, "rest", false, "serve commands over http")
	flags.IntVar(&opts.webPort, "port", 8002, "listening port for web server")
}

func run(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	config, err := configs.NewConfig(opts.configPath)
	if err != nil {
		return err
	}

	logConfig := logging.DefaultConfig(config.LogPath())
	logConfig.Level = config.LogLevel
	logger, err := logging.New(logConfig)
	if err != nil {
		return err
	}
	defer logger.Sync()

	metaKV, err := states.OpenBackend(ctx, config, logger)
	if err != nil {
		logger.Error("failed to open backend", zap.Error(err))
		return err
	}
	defer metaKV.Close()

	dir := directory.New(metaKV)
	appOpts := []bapps.AppOption{bapps.WithLogger(logger)}

	var app bapps.BApp
	switch {
	case opts.restServer:
		app = bapps.NewWebServerApp(opts.webPort, dir, appOpts...)
	case len(opts.oneLineCommand) > 0:
		app = bapps.NewOlcApp(opts.oneLineCommand)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		app = bapps.NewPipeApp(os.Stdin)
	case opts.simple:
		app = bapps.NewSimpleApp()
	default:
		defer bapps.RestoreTerminal()
		app = bapps.NewPromptApp(config, appOpts...)
	}

	start := states.Start(config, dir, states.WithLogger(logger))
	app.Run(start)
	return nil
}
