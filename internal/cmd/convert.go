package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/capstan/internal/compose"
	"github.com/cameronsjo/capstan/internal/fileutil"
)

var (
	convertFormat        string
	convertQuiet         bool
	convertNoInterpolate bool
	convertServices      bool
	convertVolumes       bool
	convertProfiles      bool
	convertImages        bool
	convertOutput        string
)

// convertCmd represents the convert command.
var convertCmd = &cobra.Command{
	Use:     "convert",
	Aliases: []string{"config"},
	Short:   "Print the merged compose document in canonical form",
	Long: `Load, validate and merge the compose files, then print the result.

Variables are substituted from the environment unless --no-interpolate is
given. The listing flags print one name per line instead of the document;
when several are given the first of --services, --volumes, --profiles,
--images wins.

Examples:
  capstan convert                          # Merged document as YAML
  capstan convert --format json -o out.json
  capstan -f base.yml -f prod.yml config --images
  capstan convert -q                       # Validate only`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", "yaml", "Output format (yaml, json)")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "Only validate the configuration, don't print anything")
	convertCmd.Flags().BoolVar(&convertNoInterpolate, "no-interpolate", false, "Don't interpolate environment variables")
	convertCmd.Flags().BoolVar(&convertServices, "services", false, "Print the service names, one per line")
	convertCmd.Flags().BoolVar(&convertVolumes, "volumes", false, "Print the volume names, one per line")
	convertCmd.Flags().BoolVar(&convertProfiles, "profiles", false, "Print the profile names, one per line")
	convertCmd.Flags().BoolVar(&convertImages, "images", false, "Print the image names, one per line")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Save to file (default to stdout)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := compose.ParseFormat(convertFormat)
	if err != nil {
		return err
	}

	doc, err := loadProject(convertNoInterpolate)
	if err != nil {
		return err
	}

	if convertQuiet {
		return nil
	}

	out := cmd.OutOrStdout()
	switch {
	case convertServices:
		return printLines(out, doc.ServiceNames())
	case convertVolumes:
		return printLines(out, doc.VolumeNames())
	case convertProfiles:
		return printLines(out, doc.Profiles())
	case convertImages:
		return printLines(out, doc.Images())
	}

	data, err := compose.Render(doc, format)
	if err != nil {
		return err
	}

	if convertOutput != "" {
		return fileutil.WriteFile(convertOutput, data, 0644)
	}
	_, err = out.Write(data)
	return err
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
