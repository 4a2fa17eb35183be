package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/pkg/pipeline"
)

// transformCommand creates the transform command, which pseudo-localizes
// plain text rather than files.
func (c *CLI) transformCommand() *cobra.Command {
	var transforms *transformFlags

	cmd := &cobra.Command{
		Use:   "transform [text]...",
		Short: "Pseudo-localize text from arguments or stdin",
		Long: `Pseudo-localize each argument and print the results one per line. Without
arguments, every line read from stdin is transformed.`,
		Example: `  pseudoloc transform "Hello {0}, you have {1} messages"
  pseudoloc transform -u "Saved {0} files"
  cat strings.txt | pseudoloc transform --transforms accents,brackets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			ids, err := transforms.resolve(cfg)
			if err != nil {
				return err
			}
			opts := pipeline.Options{Transforms: ids}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, arg := range args {
					fmt.Fprintln(out, opts.Apply(arg))
				}
				return nil
			}

			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 64*1024), 1<<20)
			for sc.Scan() {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				fmt.Fprintln(out, opts.Apply(sc.Text()))
			}
			return sc.Err()
		},
	}

	transforms = addTransformFlags(cmd)
	return cmd
}
