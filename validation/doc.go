// Package validation decides whether a candidate record may enter a store.
//
// A policy is a Composite of independent per-field checks run in a fixed order
// (first name, last name, date of birth, sex, weight, height). The first failing
// check determines the reported *Error. Policies are described by Rules, which
// can be loaded from YAML; "default" and "custom" are built in.
package validation
