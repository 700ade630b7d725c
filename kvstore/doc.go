// Package kvstore groups the durable key-value backends the preference store persists
// through.
//
//   - [github.com/MrEthical07/goConsole/kvstore/rediskv]: Redis strings under a prefix.
//   - [github.com/MrEthical07/goConsole/kvstore/sqlitekv]: a single SQLite table.
//   - [github.com/MrEthical07/goConsole/kvstore/memkv]: process memory, for tests and
//     headless runs.
//
// Every backend reports a missing key as found=false with a nil error and reserves
// errors for backend failures.
package kvstore
