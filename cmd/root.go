package cmd

import (
	"arquivao/pkg/config"
	"arquivao/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	root          string
	output        string
	configPath    string
	ignoreFile    string
	tree          string
	physicalLines bool
	debug         bool
}

// NewRootCmd builds the command tree. Running the root command without
// arguments archives the working directory.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "arquivao",
		Short: "Arquivao merges a directory tree into one indexed text file",
		Long: `Arquivao walks a directory, skips dependency, build and VCS artifacts,
and writes every remaining file into a single text file. Each file is wrapped
in <DOCUMENT> markers and an index at the top lists the lines each file occupies.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				logging.SetDebug(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(cmd, opts, logger)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.root, "root", ".", "directory to archive")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "archive file to write")
	flags.StringVar(&opts.configPath, "config", "", "YAML config file with exclusions and defaults")
	flags.StringVar(&opts.ignoreFile, "ignore-file", "", "gitignore-syntax file with extra patterns to skip")
	flags.StringVar(&opts.tree, "tree", "", "also write a directory tree of the archived files to this path")
	flags.BoolVar(&opts.physicalLines, "physical-lines", false, "index the lines physically written instead of the legacy numbering")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}
