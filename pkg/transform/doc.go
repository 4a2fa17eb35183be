// Package transform implements the pseudo-localization transforms and the
// ordered pipeline that applies them to a single string value.
//
// # Transforms
//
// Each transform is a pure, total [Func] from string to string:
//
//   - [ExtraLength]: grows every space-separated word by about 30% so layouts
//     can be checked for truncation. The number of words never changes.
//   - [Accents]: swaps Latin letters for accented look-alikes so text that
//     skipped localization stands out.
//   - [Brackets]: wraps the value in [ and ] to reveal clipped starts and ends.
//   - [Mirror]: reverses the value character by character.
//   - [Underscores]: blanks every character with _ except placeholders.
//
// All transforms except Mirror copy positional placeholders ({0}, {12})
// through unchanged, using the recognition rule of package placeholder.
// Mirror reverses everything, placeholder digits included.
//
// # Pipeline
//
// A [Pipeline] is an ordered list of transforms folded over a value. Order is
// significant (Brackets then Mirror differs from Mirror then Brackets) and is
// never changed by this package. An empty pipeline is the identity.
//
//	p, err := transform.New(transform.ExtraLengthID, transform.AccentsID, transform.BracketsID)
//	if err != nil {
//	    return err
//	}
//	p.Apply("Save {0} files") // "[ŠåṽéŠå {0} ƒîļéšƒî]"
//
// Or, for a one-off call with transform identifiers:
//
//	transform.Apply("Cancel", []transform.ID{transform.MirrorID})
//
// Transforms hold no state, so pipelines may be shared between goroutines.
package transform
