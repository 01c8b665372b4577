// Package schema defines the wire types of the bridge: method names, call
// parameters, results and the normalized Failure shape returned to callers.
package schema
