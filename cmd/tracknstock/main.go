// Command tracknstock is a terminal client for the inventory REST API. It
// offers the same operations as the web dashboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tracknstock/internal/commons"
	"tracknstock/internal/domain"
	apperrors "tracknstock/internal/errors"
	"tracknstock/internal/form"
	"tracknstock/internal/infrastructure/httpclient"
	"tracknstock/internal/infrastructure/logger"
	"tracknstock/internal/product"
	"tracknstock/internal/product/service"
)

type inventory interface {
	Load(ctx context.Context) (service.Snapshot, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Submit(ctx context.Context, modal form.Modal) (form.Modal, *domain.Product, error)
	Delete(ctx context.Context, id int64, confirmed bool) error
}

type app struct {
	configPath string
	apiURL     string
	logLevel   string

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	inventory inventory
	logger    *zap.Logger
}

func main() {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd(a).ExecuteContext(ctx)
	stop()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tracknstock",
		Short:         "Terminal client for the TrackNStock inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "optional YAML config file")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "inventory API base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	cmd.AddCommand(
		listCmd(a),
		statsCmd(a),
		exportCmd(a),
		addCmd(a),
		updateCmd(a),
		deleteCmd(a),
	)
	return cmd
}

// setup builds the use case from configuration unless one was injected.
func (a *app) setup() error {
	if a.inventory != nil {
		return nil
	}

	cfg, err := commons.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(a.apiURL, "/")
	}

	zapLogger, err := logger.New(a.logLevel, "console")
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	client, err := httpclient.New(cfg.API)
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	a.logger = zapLogger
	a.inventory = product.NewUseCase(client, cfg.API.BaseURL, zapLogger, nil)
	return nil
}

// describeError renders err for the terminal, listing field problems for
// validation failures.
func describeError(err error) string {
	if ve, ok := apperrors.IsValidationError(err); ok {
		var b strings.Builder
		b.WriteString(ve.Message)
		for _, d := range ve.Details {
			b.WriteString("\n  - ")
			b.WriteString(d.Message)
		}
		return b.String()
	}
	if _, ok := apperrors.IsServerError(err); ok {
		return apperrors.UserMessage(err)
	}
	if _, ok := apperrors.IsTransportError(err); ok {
		return apperrors.UserMessage(err)
	}
	return err.Error()
}
