package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/config"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/logger"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/service"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/xid"
)

func newReportCmd(v *viper.Viper) *cobra.Command {
	var start, end, outDir string

	cmd := &cobra.Command{
		Use:   "informe",
		Short: "Generate the sales report for a date range and write it as XLSX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromViper(v)
			log := logger.New(os.Stderr, cfg.Server.Mode, cfg.LogLevel)
			ctx := backend.AsService(log.WithContext(cmd.Context()))

			comps, err := buildComponents(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer comps.Close(log)

			path, err := writeReport(ctx, comps.service, domain.ReportRequest{Start: start, End: end}, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "desde", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "hasta", "", "last day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outDir, "salida", ".", "directory the workbook is written to")
	return cmd
}

// writeReport runs the report screen once, as the dashboard would, and
// saves the workbook under dir. It returns the written path.
func writeReport(ctx context.Context, svc *service.Service, req domain.ReportRequest, dir string) (string, error) {
	rec := notify.NewRecorder()
	screen := svc.Reports(xid.Session(), rec)
	defer func() { _ = screen.Cancel(ctx) }()

	if err := screen.Mount(ctx); err != nil {
		return "", err
	}
	if _, err := screen.Generate(ctx, req); err != nil {
		return "", describeFailure(rec, err)
	}

	tmp, err := os.CreateTemp(dir, ".informe-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	name, err := screen.Export(ctx, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// describeFailure prefers the user-facing notification over the raw error.
func describeFailure(rec *notify.Recorder, err error) error {
	notes := rec.Notifications()
	if len(notes) == 0 {
		return err
	}
	last := notes[len(notes)-1]
	if last.Text == "" {
		return fmt.Errorf("%s: %w", last.Title, err)
	}
	return fmt.Errorf("%s: %s: %w", last.Title, last.Text, err)
}
