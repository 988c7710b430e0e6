package cli

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/typelate/reportstamp/internal/stamp"
)

const (
	documentFlag = "file"
	dryRunFlag   = "dry-run"
	envFileFlag  = "env-file"
	rawFlag      = "raw"
)

// Commands runs reportstamp with args (args[0] is the program name). It only
// reads the environment through getEnv.
func Commands(wd string, args []string, getEnv func(string) string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		args = args[1:]
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd := newRootCommand(wd, getEnv, stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

type updateFlags struct {
	document string
	dryRun   bool
	envFile  string
}

func (f *updateFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.document, documentFlag, stamp.DefaultDocument, "document to update, relative to the root")
	flagSet.BoolVar(&f.dryRun, dryRunFlag, false, "report the change without writing it")
	flagSet.StringVar(&f.envFile, envFileFlag, "", "dotenv file consulted when "+stamp.RunStartedAtEnv+" is not set")
}

func newRootCommand(wd string, getEnv func(string) string, stdout, stderr io.Writer) *cobra.Command {
	var (
		global globalFlags
		update updateFlags
	)
	runUpdate := func(cmd *cobra.Command, _ []string) error {
		root, err := global.root(wd)
		if err != nil {
			return err
		}
		runStartedAt, err := lookupRunStartedAt(wd, update.envFile, getEnv)
		if err != nil {
			return err
		}
		u := stamp.New(stamp.NewStorage(), newLogger(global.verbose, stderr))
		res, err := u.Update(cmd.Context(), stamp.Request{
			Root:         root,
			Document:     update.document,
			RunStartedAt: runStartedAt,
			DryRun:       update.dryRun,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, res.String())
		return err
	}

	rootCmd := &cobra.Command{
		Use:           "reportstamp",
		Short:         "Stamp the last report update time into README.md",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runUpdate,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	global.register(rootCmd.PersistentFlags())
	update.register(rootCmd.Flags())

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the marker block with the current run time",
		Args:  cobra.NoArgs,
		RunE:  runUpdate,
	}
	update.register(updateCmd.Flags())

	rootCmd.AddCommand(updateCmd, newShowCommand(wd, &global, stdout, stderr), newVersionCommand(stdout))
	return rootCmd
}

func lookupRunStartedAt(wd, envFile string, getEnv func(string) string) (string, error) {
	if value := getEnv(stamp.RunStartedAtEnv); strings.TrimSpace(value) != "" || envFile == "" {
		return value, nil
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(wd, envFile)
	}
	values, err := godotenv.Read(envFile)
	if err != nil {
		return "", fmt.Errorf("failed to read env file: %w", err)
	}
	return values[stamp.RunStartedAtEnv], nil
}

func newLogger(verbose bool, stderr io.Writer) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "reportstamp: ", 0)
}
