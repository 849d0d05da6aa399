package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bornholm/submenu/internal/access"
	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/config"
	"github.com/bornholm/submenu/internal/setup"
	"github.com/bornholm/submenu/pkg/log"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var (
	configFile string = ""
	dumpConfig bool   = false
	printTree  string = ""
	printAs    string = ""
)

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file")
	flag.BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump default configuration file and exit")
	flag.StringVar(&printTree, "print-tree", printTree, "print the navigation tree annotated for the given url and exit")
	flag.StringVar(&printAs, "print-as", printAs, "configured user whose roles apply when printing the navigation tree")
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.NewDefaultConfig()

	if dumpConfig {
		if err := config.Dump(os.Stdout, conf); err != nil {
			slog.ErrorContext(ctx, "could not dump config file", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	if configFile != "" {
		if err := config.LoadFile(configFile, conf); err != nil {
			slog.ErrorContext(ctx, "could not parse config file", log.Error(errors.WithStack(err)), slog.String("file", configFile))
			os.Exit(1)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		slog.ErrorContext(ctx, "could not interpolate config file", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(log.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.Level(conf.Logger.Level))

	if printTree != "" {
		if err := printNavigationTree(ctx, conf, printTree); err != nil {
			slog.ErrorContext(ctx, "could not print navigation tree", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	handler, err := setup.NewHandlerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not generate handler from config", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	server := http.Server{
		Addr:        string(conf.HTTP.Address),
		Handler:     handler,
		ReadTimeout: time.Duration(*conf.HTTP.ReadTimeout),
	}

	slog.InfoContext(ctx, "http server listening", slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil {
		slog.ErrorContext(ctx, "could not listen", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}

// printNavigationTree builds the tree as seen by the anonymous user, or by
// the configured user given with -print-as.
func printNavigationTree(ctx context.Context, conf *config.Config, currentURL string) error {
	builder, err := setup.NewBuilderFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	var user authn.User = authn.Anonymous

	if printAs != "" {
		u, exists := setup.NewUsersFromConfig(ctx, conf).User(printAs)
		if !exists {
			return errors.Errorf("could not find user '%s'", printAs)
		}

		user = u
	}

	tree, err := builder.Build(ctx, currentURL, access.NewChecker().AccessFunc(user))
	if err != nil {
		return errors.WithStack(err)
	}

	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()

	if err := encoder.Encode(tree); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
