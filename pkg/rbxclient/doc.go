// Package rbxclient provides the primary entry point for constructing an
// Open Cloud API client that implements the rbxcloud.Client interface.
//
// It layers configuration normalization and the HTTP transport on top of the
// resource interfaces and types defined in the rbxcloud package. Most
// applications should import rbxclient to build a client, then use the
// returned rbxcloud.Client to access resource-specific clients, for example
// DataStores(), GamePasses(), Badges().
//
// Quick start
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
//
//	  cli, err := rbxclient.New(&rbxcloud.Config{APIKey: "key"})
//	  if err != nil { log.Fatal(err) }
//
//	  stores, err := cli.DataStores().List(ctx, "123456", nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = stores
//	}
package rbxclient
