// Package apiclient is the HTTP client for the WildWave REST API.
//
// Every call goes through Client.Request, which attaches the JSON content
// type, caller header overrides and the bearer token (when one is held),
// and turns any non-2xx answer into a *RequestError carrying the server's
// message. The typed wrappers in endpoints.go bind one call each.
//
// The token lives in memory and, when a storage.KV is configured, under
// the "authToken" key so a later process starts logged in.
package apiclient
