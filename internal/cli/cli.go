package cli

import (
	"fmt"
	"os"
	"time"

	"gallerysaver/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version info
	Version   = "1.0.0"
	StartTime time.Time
)

type GlobalOptions struct {
	CfgFilePath string
	LogLevel    string

	Conf  *config.Config
	viper *viper.Viper
}

func NewRootCMD() *cobra.Command {

	globalOptions := &GlobalOptions{}

	rootCMD := &cobra.Command{
		Use:   "gallerysaver",
		Short: "Gallery Saver",
		Long:  "Saves images and files into a shared media library, either as plain files or through a media registry with pending entries.",
		// Every subcommand needs the configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return globalOptions.loadConfig(cmd)
		},
		SilenceUsage: true,
	}

	// register global flags
	globalOptions.registerFlags(rootCMD)

	// add subcommands
	rootCMD.AddCommand(NewServeCommand(globalOptions))
	rootCMD.AddCommand(NewSaveImageCommand(globalOptions))
	rootCMD.AddCommand(NewSaveFileCommand(globalOptions))
	rootCMD.AddCommand(NewMigrateCommand(globalOptions))
	rootCMD.AddCommand(NewRecoveryCommand(globalOptions))
	rootCMD.AddCommand(NewTokenCommand(globalOptions))
	rootCMD.AddCommand(NewHashPasswordCommand(globalOptions))

	return rootCMD
}

func (options *GlobalOptions) registerFlags(cmd *cobra.Command) {
	// flags that can be used for each command
	cmd.PersistentFlags().StringVar(&options.CfgFilePath, "config_path", "config.toml", "Path to the base configuration file. (Env: GALLERY_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: GALLERY_LOGGING_LEVEL)")
	cmd.PersistentFlags().String("media-root", "", "Root directory of the media library. (Env: GALLERY_STORAGE_MEDIA_ROOT)")
	cmd.PersistentFlags().String("registry-path", "", "Path to the registry database. (Env: GALLERY_REGISTRY_PATH)")
	cmd.PersistentFlags().Int("api-level", 0, "Platform level the storage capabilities derive from. (Env: GALLERY_STORAGE_API_LEVEL)")
	cmd.PersistentFlags().String("model", "", "Storage model: auto, direct or registry. (Env: GALLERY_STORAGE_MODEL)")
}

func Execute() {
	StartTime = time.Now()

	rootCmd := NewRootCMD()

	// Run the command based on os.Args
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
