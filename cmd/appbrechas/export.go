package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martin-lopez25/appbrechas/internal/config"
	"github.com/martin-lopez25/appbrechas/internal/exporter"
	"github.com/martin-lopez25/appbrechas/internal/store"
)

var (
	exportFacility string
	exportOutDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta el reporte Excel de un CLUES",
	Long:  "Genera report_<CLUES>.xlsx con las hojas Summary y Detail sin iniciar el servidor.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFacility, "clues", "", "CLUES a exportar (requerido)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "directorio de salida (por defecto <data_dir>/exports)")

	if err := exportCmd.MarkFlagRequired("clues"); err != nil {
		panic(fmt.Sprintf("failed to mark clues flag as required: %v", err))
	}
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	outDir := exportOutDir
	if outDir == "" {
		outDir = config.ExportDir(a.cfg)
	}
	path, err := exportFacilityReport(a, exportFacility, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// exportFacilityReport 导出单个 CLUES 的工作簿，返回写入路径
func exportFacilityReport(a *app, facilityID, outDir string) (string, error) {
	art, err := exporter.NewExporter(a.table).Export(exporter.ExportOptions{FacilityID: facilityID})
	if err != nil {
		return "", fmt.Errorf("export %s: %w", facilityID, err)
	}
	if art == nil {
		return "", fmt.Errorf("export: --clues must not be empty")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outDir, art.Name)
	if err := os.WriteFile(path, art.Bytes, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if art.DetailRows == 0 {
		a.logger.Warn("facility not found, wrote header-only workbook", zap.String("clues", facilityID))
	}
	if a.store != nil {
		if _, err := a.store.InsertExportLog(store.ExportLog{
			FacilityID:  facilityID,
			FileName:    art.Name,
			FileSize:    len(art.Bytes),
			SummaryRows: art.SummaryRows,
			DetailRows:  art.DetailRows,
			Channel:     store.ChannelCLI,
		}); err != nil {
			a.logger.Warn("failed to record export", zap.Error(err))
		}
	}
	return path, nil
}
