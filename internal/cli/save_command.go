// filepath: internal/cli/save_command.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gallerysaver/internal/models"

	"github.com/spf13/cobra"
)

const cliActor = "cli"

type SaveOptions struct {
	Quality int
	Name    string
	Folder  string
	Video   bool
}

func NewSaveImageCommand(globalOptions *GlobalOptions) *cobra.Command {
	opts := &SaveOptions{}

	cmd := &cobra.Command{
		Use:   "save-image <file>",
		Short: "Save the encoded image bytes read from <file> (or - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), globalOptions.Conf)
			if err != nil {
				return err
			}
			defer a.Close()

			saveArgs := models.SaveImageArgs{ImageBytes: data}
			if cmd.Flags().Changed("quality") {
				saveArgs.Quality = &opts.Quality
			}
			saveArgs.Name = optionalFlag(cmd, "name", opts.Name)
			saveArgs.Folder = optionalFlag(cmd, "folder", opts.Folder)

			return printResult(cmd.OutOrStdout(), a.gallery.SaveImage(contextOf(cmd), cliActor, saveArgs))
		},
	}

	cmd.Flags().IntVar(&opts.Quality, "quality", 100, "JPEG quality (0-100) used by the direct storage model.")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Display name; a timestamp is generated when empty.")
	cmd.Flags().StringVar(&opts.Folder, "folder", "", "Sub folder below Pictures.")
	return cmd
}

func NewSaveFileCommand(globalOptions *GlobalOptions) *cobra.Command {
	opts := &SaveOptions{}

	cmd := &cobra.Command{
		Use:   "save-file <path>",
		Short: "Copy an existing file into the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), globalOptions.Conf)
			if err != nil {
				return err
			}
			defer a.Close()

			isImage := !opts.Video
			saveArgs := models.SaveFileArgs{
				File:    &args[0],
				Name:    optionalFlag(cmd, "name", opts.Name),
				Folder:  optionalFlag(cmd, "folder", opts.Folder),
				IsImage: &isImage,
			}
			return printResult(cmd.OutOrStdout(), a.gallery.SaveFile(contextOf(cmd), cliActor, saveArgs))
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Display name; a timestamp is generated when empty.")
	cmd.Flags().StringVar(&opts.Folder, "folder", "", "Sub folder below Pictures or Movies.")
	cmd.Flags().BoolVar(&opts.Video, "video", false, "Store the file in the Movies collection.")
	return cmd
}

func optionalFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image bytes: %w", err)
	}
	return data, nil
}

// printResult writes the result as JSON. A failed save is reported through
// the result, not the exit code.
func printResult(w io.Writer, res models.SaveResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
