// Package resource walks structured resource documents and rewrites their
// localizable string values.
//
// A [Walker] reads one document, calls a [Func] once for every localizable
// value in document order, and writes an equivalent document in which each
// value has been replaced by what the function returned. Keys, names,
// attributes and non-string values are copied through.
//
// # Formats
//
//   - [ResX]: .NET XML resource files. Only the <value> of string <data>
//     entries is rewritten; typed entries (type or mimetype attribute) and
//     designer metadata (names starting with ">>") are left alone.
//   - [JSON]: string values of nested objects and arrays. Key order is kept.
//   - [YAML]: !!str scalars. Comments and ordering are kept.
//   - [TOML]: string leaves, including those inside arrays and tables.
//
// # Usage
//
//	w, err := resource.NewWalker(resource.ResX)
//	if err != nil {
//	    return err
//	}
//	n, err := w.Walk(src, dst, resource.Values(pipeline.Apply))
//
// Walkers are stateless and safe for concurrent use.
package resource
