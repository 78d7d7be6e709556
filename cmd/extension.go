package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"
)

// Environment passed to extensions, and read back by LoadConfig.
const (
	EnvStore    = "BANK_STORE"
	EnvDataFile = "BANK_DATA_FILE"
	EnvDatabase = "BANK_DATABASE"
)

// RunExtension attempts to find and execute an external bk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "bk-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("external command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// The extension sees the resolved store, whatever its origin.
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvStore+"="+cfg.Store)
	cmd.Env = append(cmd.Env, EnvDataFile+"="+cfg.DataFile)
	cmd.Env = append(cmd.Env, EnvDatabase+"="+cfg.Database)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
