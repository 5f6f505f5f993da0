package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/hdrstrip/internal/version"
	"github.com/arthur-debert/hdrstrip/pkg/config"
	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/arthur-debert/hdrstrip/pkg/filesystem"
	"github.com/arthur-debert/hdrstrip/pkg/logging"
	"github.com/arthur-debert/hdrstrip/pkg/output"
	"github.com/arthur-debert/hdrstrip/pkg/rewriter"
	"github.com/arthur-debert/hdrstrip/pkg/rulesdoc"
	"github.com/arthur-debert/hdrstrip/pkg/stripper"
	"github.com/arthur-debert/hdrstrip/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ProgramName is shown in the usage line
const ProgramName = "hdrstrip"

// globalOptions holds the persistent flags shared by all commands
type globalOptions struct {
	verbosity  int
	configPath string
	format     string
}

// reportedError marks a failure whose status line was already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		opts   globalOptions
		dryRun bool
		diff   bool
	)

	rootCmd := &cobra.Command{
		Use:     ProgramName + " <file>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		// Extra arguments are ignored; a missing one prints the usage line
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The usage line is plain text, so it does not depend on --format
			if len(args) == 0 {
				if err := output.NewRenderer(cmd.OutOrStdout(), ui.FormatText).Usage(ProgramName); err != nil {
					return err
				}
				return &reportedError{err: errors.New(errors.ErrUsage, "missing file argument")}
			}
			if len(args) > 1 {
				log.Warn().Strs("ignored", args[1:]).Msg("Only the first file argument is processed")
			}

			renderer, err := newRenderer(cmd.OutOrStdout(), opts.format)
			if err != nil {
				return err
			}

			path := args[0]
			result, err := runStrip(path, opts, rewriter.Options{DryRun: dryRun, Diff: diff})
			if err != nil {
				log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Processing failed")
				if rerr := renderer.Error(path, err); rerr != nil {
					return rerr
				}
				return &reportedError{err: err}
			}
			return renderer.Result(result)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&diff, "diff", false, MsgFlagDiff)

	initTemplateFormatting(rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRulesCmd(&opts))
	rootCmd.AddCommand(newGenConfigCmd(&opts))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// runStrip loads configuration, compiles the rules and rewrites path
func runStrip(path string, opts globalOptions, rwOpts rewriter.Options) (*rewriter.Result, error) {
	s, err := loadStripper(opts)
	if err != nil {
		return nil, err
	}
	return rewriter.New(filesystem.NewOS(), s, rwOpts).Rewrite(path)
}

func loadConfig(opts globalOptions) (*config.Config, error) {
	return config.Load(config.Options{Path: opts.configPath})
}

func loadStripper(opts globalOptions) (*stripper.Stripper, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	rules, err := stripper.NewRules(cfg.StripperTarget())
	if err != nil {
		return nil, err
	}
	return stripper.New(rules...), nil
}

func resolveFormat(w io.Writer, name string) (ui.Format, error) {
	format, err := ui.ParseFormat(name)
	if err != nil {
		return ui.FormatAuto, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return ui.Resolve(format, w), nil
}

func newRenderer(w io.Writer, formatName string) (*output.Renderer, error) {
	format, err := resolveFormat(w, formatName)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(w, format), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", ProgramName, version.Version)
			fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			fmt.Fprintf(out, "Built:  %s\n", version.Date)
		},
	}
}

func newRulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: MsgRulesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStripper(*opts)
			if err != nil {
				return err
			}
			format, err := resolveFormat(cmd.OutOrStdout(), opts.format)
			if err != nil {
				return err
			}

			var renderer rulesdoc.Renderer = &rulesdoc.PlainRenderer{}
			if format == ui.FormatTerminal {
				renderer = rulesdoc.NewGlamourRenderer()
			}
			_, err = io.WriteString(cmd.OutOrStdout(), renderer.Render(rulesdoc.Markdown(s.Rules())))
			return err
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return err
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			target := filepath.Join(".", config.ProjectFile)
			if _, err := os.Stat(target); err == nil && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, target)
			}
			if err := os.WriteFile(target, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
