package cli

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"gallerysaver/internal/services/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type TokenOptions struct {
	Subject string
	TTL     time.Duration
}

func NewTokenCommand(globalOptions *GlobalOptions) *cobra.Command {
	opts := &TokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT for an API caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := globalOptions.Conf
			if cfg.Auth.Secret == "" {
				return errors.New("auth.secret is not configured")
			}
			ttl := opts.TTL
			if ttl <= 0 {
				ttl = cfg.TokenTTLDuration
			}
			token, expires, err := auth.NewTokenService(cfg.Auth.Secret).GenerateToken(opts.Subject, ttl)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"access_token": token,
				"expires_at":   expires,
			})
		},
	}

	cmd.Flags().StringVar(&opts.Subject, "subject", "cli", "Caller name recorded in the token and in audit events.")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "Token lifetime; defaults to auth.token_ttl.")
	return cmd
}

func NewHashPasswordCommand(globalOptions *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for auth.password_hash",
		Long:  "Reads a password from the terminal without echo (or one line from stdin when piped) and prints its bcrypt hash.",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := getPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if len(password) == 0 {
				return errors.New("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), hash+"\n")
			return err
		},
	}
}

// getPassword prompts on w and reads without echo when stdin is a terminal.
func getPassword(stdin io.Reader, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if f, ok := stdin.(*os.File); ok && f == os.Stdin && isTerminal(fd) {
		if _, err := io.WriteString(w, "Enter password: "); err != nil {
			return nil, err
		}
		pw, err := readPassword(fd)
		io.WriteString(w, "\n")
		return pw, err
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return []byte(strings.TrimRight(line, "\r")), nil
}
