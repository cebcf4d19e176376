package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"makelift.dev/pkg/makelift/internal/adapter"
	"makelift.dev/pkg/makelift/internal/controller"
	"makelift.dev/pkg/makelift/internal/domain"
	m "makelift.dev/pkg/makelift/internal/model"
)

var noReportFlag bool

const convertLongDescription = `Convert a legacy Makefile project to CMake build files (default: current
working directory).

Each component directory named by the project's COMPONENT_PATHS gets its
own CMakeLists.txt; components that already carry one are skipped with a
notice. Finally a project-level CMakeLists.txt is generated from the
'main' component's sources. Existing files are never overwritten.`

// convertCmd represents the convert command.
var convertCmd = newConvertCmd()

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [project path]",
		Short: "Convert a Makefile project to CMake",
		Long:  convertLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger("", verboseFlag)

			projectPath, err := resolveProjectPath(args)
			if err != nil {
				return err
			}

			rulesPath := os.Getenv(m.EnvRulesPath)
			if rulesPath == "" {
				return fmt.Errorf("%s is not set; point it at the shared build rules installation", m.EnvRulesPath)
			}

			workflow := buildWorkflow(cmd, projectPath, rulesPath)

			_, err = workflow.ConvertProject(cmd.Context(), projectPath)

			return err
		},
	}

	cmd.Flags().BoolVar(&noReportFlag, noReportFlagName, false, "skip writing the conversion report")

	return cmd
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func resolveProjectPath(args []string) (m.Path, error) {
	if len(args) > 0 {
		return m.Path(args[0]), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}

	return m.Path(cwd), nil
}

// buildWorkflow wires the adapters and domain services for one conversion
// run. Verbose mode forces the plain UI so traced make output stays readable.
func buildWorkflow(cmd *cobra.Command, projectPath m.Path, rulesPath string) domain.Workflow {
	fs := adapter.NewLocalProjectFSAdapter()
	runner := adapter.NewLocalMakeRunnerAdapter()

	var trace io.Writer
	if verboseFlag {
		trace = cmd.ErrOrStderr()
	}

	resolver := domain.NewVariableResolver(runner, trace)
	normalizer := domain.NewComponentNormalizer(resolver, fs, rulesPath)
	classifier := domain.NewEquivalenceClassifier(fs)
	emitter := domain.NewDescriptorEmitter(fs)

	interactive := controller.IsTTY(os.Stdout) && !verboseFlag
	ui := controller.NewUI(cmd, interactive)

	var reportPath m.Path
	if viper.GetBool(reportEnabledKey) && !noReportFlag {
		reportPath = fs.JoinPath(string(projectPath), viper.GetString(reportFilenameKey))
	}

	return domain.NewWorkflow(
		resolver,
		normalizer,
		classifier,
		emitter,
		fs,
		adapter.NewYAMLReportStore(),
		ui,
		domain.WorkflowOptions{
			ShowDiff:   verboseFlag,
			ReportPath: reportPath,
		},
	)
}
