package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/winimoid/organext/internal/credential"
	"github.com/winimoid/organext/internal/theme"
)

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage API credentials in the system keyring",
}

var credentialSetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store a credential value",
	Long: "set stores a credential in the system keyring. Known keys:\n" +
		"  " + credential.KeyAnthropicAPIKey + "\n" +
		"  " + credential.KeyPushoverToken + "\n" +
		"  " + credential.KeyPushoverUser + "\n" +
		"The value is read from stdin so it never appears in shell history.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("value for %s: ", args[0])
		reader := bufio.NewReader(os.Stdin)
		value, err := reader.ReadString('\n')
		if err != nil {
			fatal("reading value", err)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			fatal("reading value", fmt.Errorf("empty value"))
		}

		if err := credential.Set(args[0], value); err != nil {
			fatal("storing credential", err)
		}
		fmt.Println(theme.OKStyle.Render("credential stored"))
	},
}

var credentialRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Remove a credential",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := credential.Delete(args[0]); err != nil {
			fatal("removing credential", err)
		}
		fmt.Println(theme.OKStyle.Render("credential removed"))
	},
}

func init() {
	credentialCmd.AddCommand(credentialSetCmd, credentialRmCmd)
	rootCmd.AddCommand(credentialCmd)
}
