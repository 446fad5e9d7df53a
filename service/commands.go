package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"postview/app/repositories"
)

// DBCommands runs the store maintenance subcommands
type DBCommands struct {
	Path      string
	BackupDir string
	In        io.Reader
	Out       io.Writer
}

// NewDBCommands creates DBCommands for the store at path using stdio
func NewDBCommands(path string) *DBCommands {
	return &DBCommands{
		Path:      path,
		BackupDir: filepath.Join(filepath.Dir(path), "backups"),
		In:        os.Stdin,
		Out:       os.Stdout,
	}
}

// Handle runs a db subcommand and returns an exit code.
func (c *DBCommands) Handle(args []string) int {
	if len(args) < 1 {
		c.printHelp()
		return 1
	}

	switch args[0] {
	case "init":
		return c.initDb()
	case "clean":
		return c.clean()
	case "seed":
		return c.seed()
	case "backup":
		return c.backup()
	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(c.Out, "Error: backup file path required for restore")
			return 1
		}
		return c.restore(args[1])
	case "help":
		c.printHelp()
		return 0
	default:
		fmt.Fprintf(c.Out, "Unknown db command: %s\n\n", args[0])
		c.printHelp()
		return 1
	}
}

func (c *DBCommands) printHelp() {
	fmt.Fprintln(c.Out, `Usage: postview db <command>

Commands:
  init                            Initialize a new empty store
  clean                           Delete the store
  seed                            Load the sample posts and comments
  backup                          Create a backup of the store
  restore <file>                  Restore the store from a backup
  help                            Display this help message`)
}

// confirm asks a yes/no question, defaulting to no
func (c *DBCommands) confirm(question string) bool {
	fmt.Fprintf(c.Out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(c.In).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

func (c *DBCommands) exists() bool {
	_, err := os.Stat(c.Path)
	return err == nil
}

func (c *DBCommands) clean() int {
	if !c.exists() {
		fmt.Fprintln(c.Out, "Store is already clean (does not exist)")
		return 0
	}

	if !c.confirm("Are you sure you want to clean the store? This cannot be undone.") {
		fmt.Fprintln(c.Out, "Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(c.Path); err != nil {
		fmt.Fprintf(c.Out, "Failed to clean store: %v\n", err)
		return 1
	}
	fmt.Fprintln(c.Out, "Store cleaned successfully")
	return 0
}

func (c *DBCommands) initDb() int {
	if c.exists() {
		fmt.Fprintln(c.Out, "Store already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}

	if err := os.MkdirAll(c.Path, 0755); err != nil {
		fmt.Fprintf(c.Out, "Failed to create store directory: %v\n", err)
		return 1
	}

	db, err := repositories.Open(c.Path)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to initialize store: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Fprintln(c.Out, "Store initialized successfully")
	return 0
}

func (c *DBCommands) seed() int {
	db, err := repositories.Open(c.Path)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to open store: %v\n", err)
		return 1
	}
	defer db.Close()

	created, err := repositories.Seed(
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
	)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to seed store: %v\n", err)
		return 1
	}
	fmt.Fprintf(c.Out, "Seeded %d posts\n", created)
	return 0
}

func (c *DBCommands) backup() int {
	if !c.exists() {
		fmt.Fprintln(c.Out, "No store exists to backup")
		return 1
	}

	if err := os.MkdirAll(c.BackupDir, 0755); err != nil {
		fmt.Fprintf(c.Out, "Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := repositories.Open(c.Path)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to open store: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(c.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Fprintf(c.Out, "Failed to backup store: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.Out, "Store backed up successfully to %s\n", backupFile)
	return 0
}

func (c *DBCommands) restore(backupFile string) int {
	fi, err := os.Stat(backupFile)
	if err != nil {
		fmt.Fprintf(c.Out, "Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintf(c.Out, "Backup file is empty: %s\n", backupFile)
		return 1
	}

	if c.exists() {
		if !c.confirm("Existing store found. Do you want to replace it?") {
			fmt.Fprintln(c.Out, "Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(c.Path); err != nil {
			fmt.Fprintf(c.Out, "Failed to remove existing store: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(c.Path, 0755); err != nil {
		fmt.Fprintf(c.Out, "Failed to create store directory: %v\n", err)
		return 1
	}

	db, err := repositories.Open(c.Path)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to open store: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Fprintf(c.Out, "Failed to restore store: %v\n", err)
		return 1
	}

	fmt.Fprintln(c.Out, "Store restored successfully")
	return 0
}
