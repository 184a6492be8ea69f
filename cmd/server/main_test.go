package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/config"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/report"
)

func inMemoryConfig() config.Config {
	return config.Config{Cache: config.CacheConfig{ReportTTL: time.Minute}}
}

func TestBuildComponentsFallsBackToMemory(t *testing.T) {
	comps, err := buildComponents(context.Background(), inMemoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer comps.Close(zerolog.Nop())

	assert.NotNil(t, comps.service)
	assert.Empty(t, comps.closers)
}

func TestBuildComponentsUnreachableRedisFallsBack(t *testing.T) {
	cfg := inMemoryConfig()
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	comps, err := buildComponents(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, comps.closers)
}

func TestWriteReportCreatesWorkbook(t *testing.T) {
	comps, err := buildComponents(context.Background(), inMemoryConfig(), zerolog.Nop())
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := writeReport(context.Background(), comps.service, domain.ReportRequest{Start: "2024-07-01", End: "2024-07-31"}, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "informe_ventas_"))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()
	assert.Contains(t, book.GetSheetList(), report.SheetName)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteReportSurfacesNotification(t *testing.T) {
	comps, err := buildComponents(context.Background(), inMemoryConfig(), zerolog.Nop())
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = writeReport(context.Background(), comps.service, domain.ReportRequest{Start: "2023-01-01", End: "2023-01-31"}, dir)
	require.ErrorIs(t, err, report.ErrNoSales)
	assert.Contains(t, err.Error(), "No se encontraron ventas")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootCommandListsSubcommands(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "serve")
	assert.Contains(t, out.String(), "informe")
}

func TestInformeCommandAgainstInMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"informe", "--backend-url", "", "--desde", "2024-07-01", "--hasta", "2024-08-31", "--salida", dir})

	require.NoError(t, root.Execute())

	path := strings.TrimSpace(out.String())
	assert.Equal(t, dir, filepath.Dir(path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}
