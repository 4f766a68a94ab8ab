// Command kftool samples, converts and inspects keyframe animation files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	pkgconfig "github.com/arloliu/keyframe/pkg/config"
)

func setupLogging(level log.Level) {
	formatter := &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	}
	log.SetFormatter(formatter)
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
}

func loadConfig(cmd *cli.Command) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadOrDefault(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	setupLogging(cfg.Level())

	return cfg, nil
}

func requireArgs(cmd *cli.Command, n int) error {
	if cmd.Args().Len() != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", cmd.Name, n, cmd.Args().Len())
	}

	return nil
}

func runSample(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	return sampleFile(ctx, os.Stdout, cmd.Args().Get(0), cfg)
}

func runConvert(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in, out := cmd.Args().Get(0), cmd.Args().Get(1)
	owner := cmd.String("owner")
	if owner == "" {
		owner = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	}

	return convertFile(in, out, owner, cfg)
}

func runDump(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	return dumpBundle(os.Stdout, data)
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	return watchFile(ctx, os.Stdout, cmd.Args().Get(0), cfg)
}

func main() {
	cmd := &cli.Command{
		Name:  "kftool",
		Usage: "Sample, convert and inspect keyframe animation tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "kftool.yaml",
				Value:       "kftool.yaml",
				Sources:     cli.EnvVars("KFTOOL_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sample",
				Usage:     "Evaluate every track of a keyframe text file across the animation window",
				ArgsUsage: "FILE",
				Action:    runSample,
			},
			{
				Name:      "convert",
				Usage:     "Pack the tracks of a keyframe text file into a bundle",
				ArgsUsage: "IN OUT",
				Action:    runConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "owner",
						Usage: "Owner name stored with every track (default: input file name)",
					},
				},
			},
			{
				Name:      "dump",
				Usage:     "Print the tracks of a bundle as keyframe text",
				ArgsUsage: "IN",
				Action:    runDump,
			},
			{
				Name:      "watch",
				Usage:     "Re-sample a keyframe text file whenever it changes",
				ArgsUsage: "FILE",
				Action:    runWatch,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.WithError(err).Error("kftool failed")
		stop()
		os.Exit(1)
	}
}
