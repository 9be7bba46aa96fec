package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/tabula"
	"github.com/phanxgames/tabula/internal/demo"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "tabula-demo",
		Short:        "tabula-demo shows a card table built with tabula",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML scene config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func (o *rootOptions) load() (tabula.Config, error) {
	if o.configPath == "" {
		return tabula.DefaultConfig(), nil
	}
	return tabula.LoadConfig(o.configPath)
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		seed          uint64
		scriptPath    string
		screenshotDir string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the demo table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			scene, err := tabula.NewSceneFromConfig(cfg)
			if err != nil {
				return err
			}
			if opts.verbose {
				scene.SetDebugMode(true)
			}
			scene.SetLogger(logger)
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			if _, err := demo.Build(scene, logger, seed); err != nil {
				return err
			}
			if scriptPath != "" {
				script, err := tabula.LoadScript(scriptPath)
				if err != nil {
					return err
				}
				scene.SetScript(script)
				scene.ScreenshotDir = screenshotDir
			}
			logger.Debug("config", "width", cfg.Width, "height", cfg.Height, "scale_mode", cfg.ScaleMode, "seed", seed)
			return tabula.Run(scene, cfg.RunConfig())
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "path to a TOML input script to replay")
	cmd.Flags().StringVar(&screenshotDir, "screenshots", tabula.DefaultScreenshotDir, "directory for script screenshots")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
}
