package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/app"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes the project list as JSON",
	Long: `export writes every project as an indented JSON array, the same file the
admin panel offers for download. Without --out it prints to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOut, err)
			}
			defer f.Close()
			w = f
		}
		return a.Projects.Export(cmd.Context(), w)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replaces the project list with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		a, err := app.New(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Projects.Import(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		log.Printf("Imported %d projects from %s", n, args[0])
		return nil
	},
}

// Version is set at build time with -ldflags "-X github.com/Zachkp/folio/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "folio", Version)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "file to write instead of stdout")
	rootCmd.AddCommand(exportCmd, importCmd, versionCmd)
}
