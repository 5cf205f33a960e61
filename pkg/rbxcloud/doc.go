// Package rbxcloud provides types, interfaces, and helpers for working with
// the Roblox Open Cloud API.
//
// # Overview
//
// The rbxcloud package defines the domain types (e.g., DataStore, GamePass,
// DeveloperProduct, Badge) and the interfaces for resource-oriented clients
// (e.g., DataStoresClient, GamePassesClient). A concrete implementation of
// these clients is provided by internal/client and constructed through the
// rbxclient package, which wires configuration, transport, and authentication.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/rbxsync-io/rbxsync/pkg/rbxclient"
//	  "github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := rbxclient.New(&rbxcloud.Config{APIKey: "key"})
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of data stores
//	  stores, err := cli.DataStores().List(ctx, "123456", rbxcloud.NewListOptions().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = stores
//	}
//
// # Queries and pagination
//
// Use ListOptions to express common list options (limit, cursor, prefix).
// List calls fetch exactly one page; callers wanting more pages pass the
// returned cursor back in on the next call. The client performs no automatic
// cursoring and no retries.
//
// # Errors
//
// All failures are classified into a closed set of kinds (config, invalid
// argument, network, upstream, decode) represented by Error. Helpers such as
// IsUpstream, IsNetwork, and IsNotFound make it easy to branch on common
// cases and to map each kind to a deterministic process exit code.
package rbxcloud
