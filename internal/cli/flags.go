package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/internal/config"
	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// transformFlags selects transforms either by individual switches
// (-l -a -b -m -u), applied in registration order, or by an explicit ordered
// --transforms list.
type transformFlags struct {
	enabled map[transform.ID]*bool
	ordered []string
}

func addTransformFlags(cmd *cobra.Command) *transformFlags {
	f := &transformFlags{enabled: make(map[transform.ID]*bool)}
	for _, info := range transform.All() {
		f.enabled[info.ID] = cmd.Flags().BoolP(info.Name, info.Flag, false, info.Summary)
	}
	cmd.Flags().StringSliceVar(&f.ordered, "transforms", nil,
		"comma-separated transforms applied in the given order (overrides -l -a -b -m -u)")
	_ = cmd.RegisterFlagCompletionFunc("transforms", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return transform.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	return f
}

// resolve returns the selected transforms. With nothing selected on the
// command line the configured list applies, and with nothing configured the
// defaults do.
func (f *transformFlags) resolve(cfg *config.Config) ([]transform.ID, error) {
	var switched []transform.ID
	for _, info := range transform.All() {
		if *f.enabled[info.ID] {
			switched = append(switched, info.ID)
		}
	}

	switch {
	case len(f.ordered) > 0 && len(switched) > 0:
		return nil, perrors.New(perrors.ErrCodeInvalidInput,
			"--transforms cannot be combined with individual transform flags")
	case len(f.ordered) > 0:
		return transform.ParseIDs(f.ordered)
	case len(switched) > 0:
		return switched, nil
	}

	if cfg != nil {
		ids, err := cfg.TransformIDs()
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}
	return transform.Defaults(), nil
}
