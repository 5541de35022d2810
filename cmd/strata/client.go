package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jbweber/strata/internal/answers"
	"github.com/jbweber/strata/internal/config"
	"github.com/jbweber/strata/internal/logging"
)

const clientLogBase = "strata-client"

type clientFlags struct {
	opts       config.ClientOptions
	unicode    bool
	configPath string
}

func (f *clientFlags) addFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&f.opts.DryRun, "dry-run", false, "Run against a dry-run server, keeping state under the output base")
	flags.StringVar(&f.opts.Socket, "socket", "", "Server socket path (default "+config.DefaultSocket+")")
	flags.BoolVar(&f.opts.Serial, "serial", false, "Run on a serial console")
	flags.BoolVar(&f.opts.SSH, "ssh", false, "Run over ssh")
	flags.BoolVar(&f.opts.ASCII, "ascii", false, "Use ascii characters only")
	flags.BoolVar(&f.unicode, "unicode", false, "Use unicode characters")
	flags.StringArrayVar(&f.opts.Screens, "screens", nil, "Only show this screen; may be repeated")
	flags.StringVar(&f.opts.Answers, "answers", "", "Auto answers file (default "+config.AutoAnswersFile+" when present)")
	flags.StringVar(&f.opts.ServerPID, "server-pid", "", "Pid of the server process")
	flags.StringVar(&f.opts.OutputBase, "output-base", "", "Directory for dry-run state and logs (default "+config.DefaultOutputBase+")")
	flags.StringVar(&f.configPath, "config", "", "YAML file with client options; flags take precedence")
}

// resolve merges the config file, the flags that were set, and the
// defaults into the effective options.
func (f *clientFlags) resolve(flags *pflag.FlagSet) (*config.ClientOptions, error) {
	opts := &config.ClientOptions{}
	if f.configPath != "" {
		loaded, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("dry-run", func() { opts.DryRun = f.opts.DryRun })
	set("socket", func() { opts.Socket = f.opts.Socket })
	set("serial", func() { opts.Serial = f.opts.Serial })
	set("ssh", func() { opts.SSH = f.opts.SSH })
	set("screens", func() { opts.Screens = f.opts.Screens })
	set("answers", func() { opts.Answers = f.opts.Answers })
	set("server-pid", func() { opts.ServerPID = f.opts.ServerPID })
	set("output-base", func() { opts.OutputBase = f.opts.OutputBase })

	switch {
	case flags.Changed("unicode") && f.unicode:
		opts.ASCII = false
	case flags.Changed("ascii"):
		opts.ASCII = f.opts.ASCII
	case f.configPath == "":
		opts.ASCII = config.DefaultASCII()
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client options: %w", err)
	}
	return opts, nil
}

func newClientCmd() *cobra.Command {
	f := &clientFlags{}
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Launch the installer client",
		Long: `Launch the installer client.

The client resolves its options, creates the socket directory, starts
logging to <log-dir>/strata-client.debug and .info, and acquires the
auto answers file when one is configured or present.

Example:
  strata client --dry-run --output-base /tmp/strata --screens keyboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return runClient(cmd.OutOrStdout(), opts, os.Args, os.LookupEnv, os.Environ())
		},
	}
	f.addFlags(cmd.Flags())
	return cmd
}

// runClient performs client startup with resolved options.
func runClient(out io.Writer, opts *config.ClientOptions, args []string, lookup func(string) (string, bool), environ []string) error {
	if err := os.MkdirAll(opts.SocketDir(), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	log, files, closer, err := logging.Setup(opts.LogDir(), clientLogBase)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	log.Info("Starting strata client " + config.BuildInfoFromEnv(lookup).String())
	log.WithField("args", strings.Join(args, " ")).Info("Arguments passed")
	for _, kv := range environ {
		log.Debug(kv)
	}

	a, err := answers.Open(opts.ResolveAnswers(config.FileExists), log)
	if err != nil {
		log.WithError(err).Error("Failed to load auto answers")
		return fmt.Errorf("failed to load auto answers: %w", err)
	}
	defer a.Close()

	log.WithFields(logrus.Fields{
		"socket":  opts.Socket,
		"dry_run": opts.DryRun,
		"ascii":   opts.ASCII,
		"screens": opts.Screens,
	}).Info("Client options resolved")

	// The server is started by the caller; the client only reconnects.
	if opts.ServerPID != "" {
		log.WithField("pid", opts.ServerPID).Info("Reconnecting to server")
		fmt.Fprintf(out, "reconnecting to server pid %s\n", opts.ServerPID)
	} else if opts.DryRun {
		log.WithField("socket", opts.Socket).Info("No server pid given, expecting a running dry-run server")
	}

	fmt.Fprintf(out, "Socket: %s\n", opts.Socket)
	fmt.Fprintf(out, "Logs: %s, %s\n", files.Debug, files.Info)
	if a != nil {
		fmt.Fprintf(out, "Answers: %s (%d screens)\n", a.Path(), a.Screens())
	} else {
		fmt.Fprintln(out, "Answers: none")
	}
	return nil
}
