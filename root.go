package main

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/jackfield/config"
	"github.com/ByLCY/jackfield/logger"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

// app 是一次命令执行期间共享的配置与日志。
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "jackfield",
		Short:         "Jackfield 标签条排版工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML 配置文件路径")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "输出调试日志")

	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newInfoCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup 读取配置并创建日志；--verbose 覆盖配置中的日志级别。
func (f *rootFlags) setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if f.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: cfg.HumanLogs,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log.With("command", cmd.Name())}, nil
}
