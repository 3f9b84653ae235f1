// Package glint runs programs of a small reactive language held as syntax
// trees.
//
// A Program ties together:
//
//   - the tree and its shared definitions (Time and Key by default)
//   - structural type inference and conflict detection
//   - a step evaluator whose streams re-run the root when they tick
//
// Typical usage:
//
//	p, err := glint.New(root, glint.Options{})
//	if cs := p.Conflicts(); len(cs) > 0 { ... }
//	v, err := p.Evaluate(ctx)
//	err = p.Run(ctx, clock, func(v runtime.Value) { ... })
//
// Detailed implementations live in syntax/, types/, conflict/, runtime/ and
// input/; settings load through config/ and JSON through codec/.
package glint
