package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lengthcheck/pkg/config"
	"github.com/dmitrymomot/lengthcheck/pkg/logger"
	"github.com/dmitrymomot/lengthcheck/pkg/validator"
	"github.com/dmitrymomot/lengthcheck/pkg/wasmhost"
)

type cliConfig struct {
	ModulePath string `env:"LENGTHCHECK_WASM_MODULE" envDefault:"validate_length.wasm"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

type checkOptions struct {
	native bool
	module string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lengthcheck",
		Short:        "Check whether texts are shorter than ten bytes",
		Version:      "0.1.0",
		SilenceUsage: true,
	}
	root.AddCommand(newCheckCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check TEXT...",
		Short: "Print true or false for each argument",
		Long: `Prints each argument with the result of validate_length: true when its
UTF-8 encoding is shorter than 10 bytes. Exits non-zero when any argument fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.native, "native", false,
		"Run the check in-process instead of through the WebAssembly module")
	cmd.Flags().StringVar(&opts.module, "module", "",
		"Path to the validate_length module (overrides LENGTHCHECK_WASM_MODULE)")
	return cmd
}

type checkFunc func(ctx context.Context, text string) (bool, error)

func nativeCheck(_ context.Context, text string) (bool, error) {
	return validator.ValidateLength(text), nil
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	ctx := cmd.Context()

	var cfg cliConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, "lengthcheck"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(cmd.ErrOrStderr()),
	)

	check := checkFunc(nativeCheck)
	if !opts.native {
		path := cfg.ModulePath
		if opts.module != "" {
			path = opts.module
		}
		mod, err := wasmhost.Load(ctx, path,
			wasmhost.WithLogger(log),
			wasmhost.WithStderr(cmd.ErrOrStderr()),
		)
		if err != nil {
			return err
		}
		defer func() {
			if err := mod.Close(ctx); err != nil {
				log.WarnContext(ctx, "close module", logger.Error(err))
			}
		}()
		check = mod.ValidateLength
	}

	rules := make([]validator.Rule, 0, len(args))
	for i, text := range args {
		ok, err := check(ctx, text)
		if err != nil {
			return fmt.Errorf("check argument %d: %w", i+1, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q\t%t\n", text, ok)

		rules = append(rules, validator.ShortTextResult(fmt.Sprintf("arg%d", i+1), ok))
	}

	return validator.Apply(rules...)
}
