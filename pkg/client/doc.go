// Package client provides a Go SDK for the InsightOne catalog service.
//
// The catalog lists every endpoint the API resells, grouped by subscription
// tier (basique, pro, entreprise). Each descriptor carries a name, a path,
// the accepted HTTP methods and a parameter list whose types use Python
// annotation syntax.
//
// # Quick Start
//
// Create a client and fetch the catalog:
//
//	c := client.New(
//	    client.WithBaseURL("https://api.insightone.example"),
//	    client.WithCatalogToken(os.Getenv("INSIGHTONE_API_TOKEN")),
//	)
//	catalog, raw, err := c.FetchCatalog(ctx)
//
// The raw JSON is returned next to the decoded value so it can be validated
// as received.
//
// # Offline Snapshots
//
// LoadCatalogFile reads the same payload from a JSON or YAML file:
//
//	catalog, raw, err := client.LoadCatalogFile("catalog.yaml")
//
// # Defaults
//
// Parameter defaults may be any JSON scalar. DefaultValue keeps the textual
// form used in query strings and whether the value counts as present
// (null, "", 0 and false do not).
package client
