package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samchinmaya/querydesk/internal/config"
	"github.com/samchinmaya/querydesk/internal/directory"
)

func newDirectoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Inspect the client directory",
	}

	cmd.AddCommand(newDirectoryCheckCmd())
	return cmd
}

func newDirectoryCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the client spreadsheet and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			records, err := directory.LoadXLSX(cfg.Directory.Path)
			if err != nil {
				return err
			}

			seen := make(map[string]int)
			problems := 0
			for i, rec := range records {
				row := i + 2 // header is row 1
				if rec.CustomerID == "" {
					fmt.Printf("row %d: missing customer id (%s)\n", row, rec.Name)
					problems++
					continue
				}
				if first, dup := seen[rec.CustomerID]; dup {
					fmt.Printf("row %d: duplicate customer id %s (first seen at row %d)\n", row, rec.CustomerID, first)
					problems++
					continue
				}
				seen[rec.CustomerID] = row
				if rec.Email == "" {
					fmt.Printf("row %d: customer %s has no contact address, escalations use the fallback\n", row, rec.CustomerID)
				}
			}

			fmt.Printf("%d rows, %d distinct customer ids, %d problem(s)\n", len(records), len(seen), problems)
			if problems > 0 {
				return fmt.Errorf("directory check found %d problem(s)", problems)
			}
			return nil
		},
	}
}
