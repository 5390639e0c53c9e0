package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/repotext/repotext/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive setup wizard (with OS keychain support)",
	Long: `Walk through repotext configuration step-by-step.

This will configure:
1. GitHub token for packing remote repositories (stored in the OS
   keychain when available)
2. Pack defaults (commit count, format)
3. GitHub API rate limit`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Repotext Configuration Wizard")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".repotext", "config.yaml")
	loadedCfg, err := config.Load(configPath)
	if err != nil {
		loadedCfg = config.Default()
	}

	km := config.NewKeyringManager()
	keychainAvailable := km.IsAvailable()
	if !keychainAvailable {
		fmt.Println("⚠️  OS keychain not available (headless system or Linux without libsecret)")
		fmt.Println("   Will store the token in the config file instead.")
		fmt.Println()
	}

	// Step 1: GitHub token
	fmt.Println("Step 1/3: GitHub Token")
	fmt.Println()
	fmt.Println("A token is only needed for private repositories and higher API")
	fmt.Println("rate limits. Create one at: https://github.com/settings/tokens")
	fmt.Printf("Current: %s\n", config.MaskToken(loadedCfg.GitHub.Token))
	fmt.Print("Enter token (or press Enter to keep current): ")

	token, err := readSecret(reader)
	if err != nil {
		return err
	}

	if token != "" {
		if keychainAvailable {
			if err := km.SetGitHubToken(token); err != nil {
				fmt.Printf("⚠️  Failed to save to keychain: %v\n", err)
				fmt.Println("Saving to config file instead...")
				loadedCfg.GitHub.Token = token
			} else {
				fmt.Println("✅ Token saved to OS keychain (secure)")
				loadedCfg.GitHub.Token = ""
			}
		} else {
			loadedCfg.GitHub.Token = token
			fmt.Println("✅ Token saved to config file (plaintext)")
		}
	} else {
		fmt.Println("✅ Keeping current token")
	}
	fmt.Println()

	// Step 2: Pack defaults
	fmt.Println("Step 2/3: Pack Defaults")
	fmt.Println()
	fmt.Printf("Current commit count: %d\n", loadedCfg.Pack.CommitCount)
	fmt.Print("Commits to include per snapshot (Enter to keep): ")
	if n, ok := readInt(reader); ok && n >= 0 {
		loadedCfg.Pack.CommitCount = n
	}

	fmt.Printf("Current format: %s\n", loadedCfg.Pack.Format)
	fmt.Print("Format, markdown or plain (Enter to keep): ")
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response == "markdown" || response == "plain" {
		loadedCfg.Pack.Format = response
	}
	fmt.Println()

	// Step 3: Rate limit
	fmt.Println("Step 3/3: GitHub API Rate Limit")
	fmt.Println()
	fmt.Printf("Current: %d requests/second\n", loadedCfg.GitHub.RateLimit)
	fmt.Print("Requests per second (Enter to keep): ")
	if n, ok := readInt(reader); ok && n > 0 {
		loadedCfg.GitHub.RateLimit = n
	}
	fmt.Println()

	fmt.Printf("Save to: %s\n", configPath)
	fmt.Print("Confirm? (Y/n): ")
	response, _ = reader.ReadString('\n')
	response = strings.TrimSpace(response)

	if response == "" || strings.ToLower(response) == "y" {
		if err := loadedCfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("✅ Configuration saved!")
	} else {
		fmt.Println("⏭️  Configuration not saved")
	}

	return nil
}

// readSecret reads a line without echoing when stdin is a terminal.
func readSecret(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

func readInt(reader *bufio.Reader) (int, bool) {
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return n, true
}
