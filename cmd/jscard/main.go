// Package main provides the jscard command line tool.
//
// jscard converts vCard files to JSContact JSON and back, and checks the
// localizations of JSContact cards.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"jscard/internal/config"
)

var log = logging.Logger("jscard")

var rootCmd = &cobra.Command{
	Use:   "jscard",
	Short: "Convert contacts between vCard and JSContact",
	Long: `jscard maps vCard 4.0 records to JSContact cards and back.
Everything without a structured home is kept as a namespaced extension
entry, so a round trip loses nothing.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var convertCmd = &cobra.Command{
	Use:   "convert [file.vcf...]",
	Short: "Convert vCard files to JSContact JSON",
	Long:  `Reads vCard files (stdin when none is given) and writes a JSON array of cards.`,
	RunE:  runConvert,
}

var exportCmd = &cobra.Command{
	Use:   "export [file.json...]",
	Short: "Convert JSContact JSON to vCard",
	Long:  `Reads JSON cards, a single card or an array (stdin when no file is given), and writes vCard.`,
	RunE:  runExport,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file.json...]",
	Short: "Check the localizations of JSContact cards",
	Long:  `Reports every localization patch whose shape differs from the node it replaces.`,
	RunE:  runValidate,
}

var (
	configPath string
	envFile    string
	outputPath string
	language   string
	debug      bool
	dump       bool
	quiet      bool

	cfg config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with JSCARD_* overrides")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "dump decoded structures to stderr")

	convertCmd.Flags().StringVarP(&language, "lang", "l", "", "apply the localizations of this language to the output")
	convertCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print diagnostics")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(*cobra.Command, []string) error {
	if debug {
		logging.SetAllLoggers(logging.LevelDebug)
	} else {
		logging.SetAllLoggers(logging.LevelInfo)
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg = config.Default()

	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}

	log.Debugf("namespace %s, identifier profile %s", cfg.ExtensionNamespace, cfg.IdentifierProfile)

	return nil
}
