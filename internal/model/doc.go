// Package model defines the core data structures shared across subscan.
//
// The central types are Node (a candidate proxy endpoint extracted from
// subscription content), URLResult (the outcome of probing a subscription
// URL), and NodeResult (the outcome of probing a node endpoint). All types
// are plain value types; once constructed they are never mutated.
package model
