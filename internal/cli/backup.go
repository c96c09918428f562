package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ritual/internal/backup"
)

type BackupExportCmd struct {
	Output string `short:"o" help:"Write to this path instead of the backup directory."`
}

func (c *BackupExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := ctx.Store.ExportBackup()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, data, 0600); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Printf("✓ Backup written: %s\n", c.Output)
		return nil
	}

	mgr := backup.NewManager(ctx.Store.Path())
	path, err := mgr.WriteBackup(data)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupImportCmd struct {
	File  string `arg:"" help:"Backup file to import."`
	Merge bool   `help:"Merge into existing data instead of replacing it."`
}

func (c *BackupImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if err := ctx.Store.ImportBackup(data, c.Merge); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	mode := "replaced"
	if c.Merge {
		mode = "merged"
	}
	fmt.Printf("✓ Backup imported (%s)\n", mode)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Store.Path())
	data, err := mgr.ReadBackup(c.BackupFile)
	if err != nil {
		return err
	}

	fmt.Println("⚠️  WARNING: This will replace your current data with the backup.")
	fmt.Println("A backup of your current data will be created before restoring.")
	fmt.Printf("\nRestore from: %s\n", filepath.Base(c.BackupFile))
	fmt.Print("Continue? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("Restore cancelled.")
		return nil
	}

	// Safety backup of the current state, without rotating it away.
	current, err := ctx.Store.ExportBackup()
	if err != nil {
		return fmt.Errorf("failed to snapshot current data before restore: %w", err)
	}
	safety, err := mgr.SafetyBackup(current)
	if err != nil {
		return fmt.Errorf("failed to write safety backup: %w", err)
	}
	fmt.Printf("Created backup of current data: %s\n", filepath.Base(safety))

	if err := ctx.Store.ImportBackup(data, false); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Data restored successfully!")
	return nil
}
