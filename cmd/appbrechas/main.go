// Package main 岗位缺口看板的命令行入口：serve / export / facilities。
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	devMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "appbrechas",
	Short: "Tablero de brechas de personal por CLUES",
	Long:  "Carga el dataset de brechas y el catálogo de puestos, sirve el tablero por CLUES y exporta reportes en Excel.",
	// 不带子命令时启动服务
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "ruta de config.toml (por defecto: directorio actual o del ejecutable)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directorio de datos (sobrescribe config.toml)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "modo desarrollo")
}

func main() {
	// .env 可选
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
