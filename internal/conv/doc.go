// Package conv holds internal conversion helpers, such as turning JSON-RPC
// request ids decoded as float64, json.Number or string into a map key.
package conv
