package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/assetry"
	"github.com/sagarc03/assetry/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file interactively",
	Long: `Create an assetry configuration file.

You will be prompted for:
  - Server port and environment
  - One or more hosts with their document root
  - Whether each host serves branch prefixes

File types and cache policies are left out so the built-in tables apply.`,
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runInit,
}

var initOutput string

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "assetry.yaml", "path of the configuration file to write")

	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(initOutput); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  "8888",
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	envSelect := promptui.Select{
		Label: "Environment",
		Items: []string{"dev", "prod"},
	}
	_, env, err := envSelect.Run()
	if err != nil {
		return handlePromptError(err)
	}

	var hosts []assetry.HostConfig
	for {
		host, hostErr := promptHost(hosts)
		if hostErr != nil {
			return handlePromptError(hostErr)
		}
		hosts = append(hosts, host)

		more := promptui.Prompt{
			Label:     "Add another host",
			IsConfirm: true,
		}
		if _, promptErr := more.Run(); promptErr != nil {
			break
		}
	}

	cfg := &config.Config{
		Env:    env,
		Server: config.ServerConfig{Port: port},
		Hosts:  hosts,
	}

	if err := config.Save(cfg, initOutput); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s with %d host(s).\n", initOutput, len(hosts))
	fmt.Println("Run 'assetry compress' to build encoded variants, then 'assetry serve'.")
	return nil
}

func promptHost(existing []assetry.HostConfig) (assetry.HostConfig, error) {
	hostnamePrompt := promptui.Prompt{
		Label: "Hostname",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("hostname is required")
			}
			for _, h := range existing {
				if h.Hostname == input {
					return fmt.Errorf("host %s already added", input)
				}
			}
			return nil
		},
	}
	hostname, err := hostnamePrompt.Run()
	if err != nil {
		return assetry.HostConfig{}, err
	}

	rootPrompt := promptui.Prompt{
		Label:    "Document root",
		Validate: validateRoot,
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return assetry.HostConfig{}, err
	}
	root, _ = filepath.Abs(root)

	branches := false
	branchPrompt := promptui.Prompt{
		Label:     "Serve branch prefixes (/<branch>/...)",
		IsConfirm: true,
	}
	if _, promptErr := branchPrompt.Run(); promptErr == nil {
		branches = true
	}

	return assetry.HostConfig{Hostname: hostname, Root: root, Branches: branches}, nil
}

func validatePort(input string) error {
	port, err := strconv.Atoi(input)
	if err != nil {
		return errors.New("port must be a number")
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validateRoot(input string) error {
	if input == "" {
		return errors.New("document root is required")
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot use %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}
	return nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
