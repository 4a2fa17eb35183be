package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/pipeline"
	"github.com/matzehuels/pseudoloc/pkg/resource"
)

// localizeOpts holds the non-transform flags of the localize command.
type localizeOpts struct {
	culture     string
	outDir      string
	format      string
	concurrency int
	noCache     bool
	refresh     bool
	quiet       bool
}

// localizeCommand creates the localize command.
func (c *CLI) localizeCommand() *cobra.Command {
	var opts localizeOpts
	var transforms *transformFlags

	cmd := &cobra.Command{
		Use:   "localize <file>...",
		Short: "Write pseudo-localized copies of resource files",
		Long: `Write a pseudo-localized copy of each input file next to the original (or in
--out-dir), with the output culture in its name. If the input name already
ends with a culture (Strings.en.resx, messages.es-MX.json) that culture is
replaced: Strings.en.resx becomes Strings.qps-ploc.resx.

Supported formats: ResX (.resx), JSON (.json), YAML (.yaml, .yml) and
TOML (.toml). Only string values are rewritten; keys, comments in ResX,
numbers and structure are kept.

Transforms selected with -l -a -b -m -u run in that fixed order whatever the
order on the command line. Use --transforms for an explicit order. With none
selected, the configured transforms (default: -l -a -b) apply.

A file that cannot be read, parsed or written is reported and the remaining
files are still processed; the exit status is non-zero if any file failed.`,
		Example: `  # Default transforms (extra length, accents, brackets)
  pseudoloc localize Resources/Strings.resx

  # Brackets and mirroring, written as Strings.qps-plocm.resx
  pseudoloc localize -b -m -o qps-plocm Resources/Strings.resx

  # Explicit order: mirror first, then brackets
  pseudoloc localize --transforms mirror,brackets locales/en.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLocalize(cmd, args, transforms, opts)
		},
	}

	transforms = addTransformFlags(cmd)
	cmd.Flags().StringVarP(&opts.culture, "culture", "o", "", "culture code used in output file names (default: qps-ploc)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write output files to this directory")
	cmd.Flags().StringVar(&opts.format, "format", "", "input format, overriding file extensions (resx, json, yaml, toml)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 0, "files processed in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the document cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only report failures")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range resource.Formats() {
			names = append(names, f.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagDirname("out-dir")

	return cmd
}

func (c *CLI) runLocalize(cmd *cobra.Command, files []string, transforms *transformFlags, opts localizeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	cfg, err := c.config()
	if err != nil {
		return err
	}
	ids, err := transforms.resolve(cfg)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Transforms:  ids,
		Culture:     cfg.Culture,
		Format:      resource.Format(opts.format),
		OutputDir:   opts.outDir,
		Refresh:     opts.refresh,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
	if cmd.Flags().Changed("culture") {
		popts.Culture = opts.culture
	}
	if cmd.Flags().Changed("concurrency") {
		popts.Concurrency = opts.concurrency
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger.Debug("localize", "files", len(files), "transforms", popts.Transforms, "culture", popts.Culture)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	prog := newProgress(logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Localizing %d file(s)...", len(files)))
	spinner.Start()
	results, err := runner.LocalizeFiles(ctx, files, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Err != nil {
			printError(out, "%s: %s", res.Input, perrors.UserMessage(res.Err))
			continue
		}
		if opts.quiet {
			continue
		}
		printSuccess(out, "The file %s was written successfully", res.Output)
		printStats(out, res.Format.String(), res.Entries, res.CacheHit)
	}

	failed := pipeline.Failed(results)
	prog.done(fmt.Sprintf("Localized %d of %d file(s)", len(results)-failed, len(results)))
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}
