// Package store gives the e2mcheck helpers access to the Redis instance the
// E2 Manager persists its state in.
//
// Keys follow the "{namespace},Field[:Qualifier]" convention, for example
// "{e2Manager},E2TInstance:e2t.att.com:38000". Values are JSON text or raw
// encoded bytes. The package does not own the schema; models.go mirrors the
// records the helpers need to read or write.
package store
