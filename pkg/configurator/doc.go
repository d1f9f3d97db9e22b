// Package configurator renders template files and strings against a data
// context.
//
// A template may open with a [header]...[header] block holding a JSON object
// of named rules. Tokens in the body are written @name@ or $name$, with an
// optional ":" followed by inline rule JSON or a #ref to a header rule:
//
//	[header]{"list": {"arrayJoin": ", "}}[header]
//	hosts=@hosts:#list@ port=$port:{"padLeft":"0"}$
//
// Configure reads a file, optionally through a process-wide content cache,
// and renders it. ConfigureString renders an in-memory template.
//
//	c := configurator.New()
//	out, err := c.Configure(ctx, "app.conf.in", template.Context{
//		"hosts": []string{"a", "b"},
//		"port":  8080,
//	}, nil)
//
// The package-level functions use a shared Configurator returned by Default.
package configurator
