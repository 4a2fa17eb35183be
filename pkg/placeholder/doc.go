// Package placeholder recognizes positional format tokens such as {0} and
// {12} inside translatable strings.
//
// A placeholder is an opening brace, one or more ASCII decimal digits and a
// closing brace. Anything else that merely looks similar ({}, {0, {a}, {1a})
// is ordinary text. Placeholders never nest and never overlap; scanning
// resumes immediately after a matched closing brace, so adjacent tokens like
// {0}{1} are recognized independently.
//
// Transforms in package transform use [Segments] to walk a string and copy
// placeholder spans verbatim while rewriting the text around them.
//
// # Usage
//
//	for sp := range placeholder.Spans("Hello {0}, you have {1} messages") {
//	    fmt.Println(sp.Start, sp.Len) // 6 3, then 20 3
//	}
//
//	for seg := range placeholder.Segments("{0} files") {
//	    fmt.Printf("%q %v\n", seg.Text, seg.Placeholder) // "{0}" true, " files" false
//	}
package placeholder
