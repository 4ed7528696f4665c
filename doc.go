// Package tether is an inversion of control container.
//
// Dependencies are registered under tokens: Go types (see TypeOf), strings,
// or symbols (see NewSymbol), optionally narrowed by a qualifier. Each
// registration names a lifecycle and a recipe: a pre-built instance, a
// factory, or a constructor function whose parameters are resolved from the
// container.
//
//	c, _ := tether.New()
//	_ = c.AddSingleton(NewConfig)
//	_ = c.AddSingleton(NewRepository)
//	_ = c.AddTransient(NewHandler)
//	if err := c.Build(ctx); err != nil {
//		// missing or cyclic dependencies
//	}
//	handler, _ := tether.Resolve[*Handler](c)
//
// Constructor parameters are resolved by parameter type unless the
// constructor's tokens are declared explicitly with Declarations.Inject.
// Build constructs every singleton in dependency order and reports missing
// and cyclic dependencies before anything is retrieved.
package tether
