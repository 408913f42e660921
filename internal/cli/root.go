package cli

import (
	"fmt"
	"os"

	"github.com/tuannt39-study/jhipster-sample/common/logger"
	"github.com/tuannt39-study/jhipster-sample/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "hr-admin"

// globalOptions 所有子命令共享
type globalOptions struct {
	EnvFile string
}

// setup 加载配置并初始化日志
func (g *globalOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.EnvFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, log, nil
}

func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "HR entity administration: REST server, migrations and scripted UI flows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.EnvFile, "env-file", ".env", "dotenv file loaded before the process environment")

	cmd.AddCommand(newServeCmd(g))
	cmd.AddCommand(newMigrateCmd(g))
	cmd.AddCommand(newListCmd(g))
	cmd.AddCommand(newExportCmd(g))
	cmd.AddCommand(newE2ECmd(g))
	cmd.AddCommand(newEventsCmd(g))
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
