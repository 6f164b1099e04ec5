package cli

import (
	"github.com/spf13/cobra"
)

type ServeOptions struct {
	Host           string
	Port           int
	JWTSecret      string
	AuditEnabled   bool
	Housekeeping   bool
	BlobBackend    string
	MaxRequestSize string
}

func NewServeCommand(globalOptions *GlobalOptions) *cobra.Command {
	serveOptions := &ServeOptions{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(globalOptions)
		},
	}

	serveOptions.registerFlags(serveCmd)

	return serveCmd
}

// Unset flags fall back to GALLERY_* variables and then to the config file,
// see loadConfig.
func (options *ServeOptions) registerFlags(cmd *cobra.Command) {
	// flags for the serve command only
	cmd.Flags().StringVar(&options.Host, "host", "", "Interface the HTTP server binds to. (Env: GALLERY_SERVER_HOST)")
	cmd.Flags().IntVar(&options.Port, "port", 0, "Port for the HTTP server. (Env: GALLERY_SERVER_PORT)")
	cmd.Flags().StringVar(&options.JWTSecret, "jwt-secret", "", "Secret key for signing JWTs; enables authentication. (Env: GALLERY_AUTH_SECRET)")
	cmd.Flags().BoolVar(&options.AuditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: GALLERY_LOGGING_AUDIT_ENABLED=true)")
	cmd.Flags().BoolVar(&options.Housekeeping, "housekeeping", true, "Run the background purge of expired pending entries. (Env: GALLERY_HOUSEKEEPING_ENABLED)")
	cmd.Flags().StringVar(&options.BlobBackend, "blob-backend", "", "Blob backend for registry entries: local or s3. (Env: GALLERY_REGISTRY_BACKEND)")
	cmd.Flags().StringVar(&options.MaxRequestSize, "max-request-size", "", "Max size of a request body (e.g. '32MB'). (Env: GALLERY_SERVER_MAX_REQUEST_SIZE)")
}
