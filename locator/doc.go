// Package locator converts caller supplied media locators into provider
// references the vendor application can read from another process.
//
// Local paths must exist and are mapped under one of the host's declared
// providers. Foreign content references are first copied into a bridge owned
// scratch area. Read access is granted to the vendor packages; scratch copies
// are removed with Release once the share finished.
package locator
