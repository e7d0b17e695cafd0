// Package settings loads, merges and validates configuration objects against
// a tree of validators.
//
// A Meta mirrors the shape of the configuration: nested maps for sections and
// validation.Validator values for leaves.
//
//	meta := settings.Meta{
//	    "build": settings.Meta{
//	        "verbose": validation.Boolean,
//	        "entry":   validation.Required(validation.ArrayOrSingle(validation.Path)),
//	    },
//	}
//
// Configuration files are read with Load by extension (.yaml, .yml, .toml,
// .json, .cue) and combined with Merge, later files winning. Validate reports
// every problem through a report.Reporter with the configuration context and
// also returns them as Problems. Unknown keys come with "did you mean"
// suggestions.
//
// Watcher re-runs loading and validation when any of the files change.
package settings
