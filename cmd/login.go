package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/achou/investool/drive"
	"github.com/google/subcommands"
	"golang.org/x/oauth2"
)

// Cloud sync flags, shared by login, pull and push.
var tokenFile = flag.String("token-file", "token.enc", "Path to the encrypted Drive token file")

func clientCredentials() (id, secret string, err error) {
	id = os.Getenv("IVT_DRIVE_CLIENT_ID")
	secret = os.Getenv("IVT_DRIVE_CLIENT_SECRET")
	if id == "" || secret == "" {
		return "", "", fmt.Errorf("set IVT_DRIVE_CLIENT_ID and IVT_DRIVE_CLIENT_SECRET to use Drive sync")
	}
	return id, secret, nil
}

func askPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// driveStore opens the Drive store with the saved token.
func driveStore(ctx context.Context) (*drive.Store, error) {
	id, secret, err := clientCredentials()
	if err != nil {
		return nil, err
	}
	passphrase, err := askPassphrase("Token passphrase: ")
	if err != nil {
		return nil, err
	}
	token, err := drive.LoadToken(*tokenFile, passphrase)
	if err != nil {
		return nil, fmt.Errorf("could not load token, run 'ivt login' first: %w", err)
	}
	return drive.NewStore(ctx, drive.OAuthConfig(id, secret), token)
}

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authorize access to Google Drive" }
func (*loginCmd) Usage() string {
	return `ivt login

  Runs the OAuth flow against Google Drive and stores the resulting
  token encrypted with a passphrase. The token only grants access to
  files this application creates.
`
}

func (*loginCmd) SetFlags(_ *flag.FlagSet) {}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, secret, err := clientCredentials()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	config := drive.OAuthConfig(id, secret)

	fmt.Println("Open this URL in a browser and authorize the application:")
	fmt.Println()
	fmt.Println("  " + config.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Println()

	code, err := askPassphrase("Authorization code: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	token, err := config.Exchange(ctx, code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exchanging the code: %v\n", err)
		return subcommands.ExitFailure
	}

	passphrase, err := askPassphrase("Passphrase to encrypt the token: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := drive.SaveToken(*tokenFile, passphrase, token); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving token: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Token saved to %s\n", *tokenFile)
	return subcommands.ExitSuccess
}
