// Package model describes the base objects manipulated by sneakpeek.
//
// The object model is composed of:
//
//	Revisions:
//	  The commit SHA being uploaded, together with the tag or branch that points at it.
//	  Revisions are resolved once per run, from CI variables or from the local git checkout.
//
//	Upload options:
//	  The immutable set of parameters for a run: source directory, sneakpeek project,
//	  related project identifier and API endpoint and credentials.
package model
