// Package explorer turns InsightOne catalog descriptors into fillable
// endpoint forms and executes them.
//
// # Normalizing
//
// NormalizeEndpoint maps a catalog descriptor to an Endpoint. Parameter types
// arrive in Python annotation syntax and are normalized as follows:
//
//	typing.Literal['json','csv']  -> KindEnum, options [json csv], display "enum"
//	<class 'int'>                 -> KindText, display "int"
//	anything else                 -> KindText, display verbatim
//
// A parameter is required when its default is missing or falsy. Its initial
// value is the default, else the first enum option, else "".
//
// # Executing
//
// Tokens are kept per endpoint in a TokenStore:
//
//	tokens := explorer.NewTokenStore()
//	tokens.Set(ep.ID, "tok123")
//
//	x := explorer.NewExecutor("https://api.insightone.example")
//	ep.SetValues(map[string]string{"symbol": "AAPL"})
//	res, err := x.Execute(ctx, ep, tokens.Get(ep.ID))
//
// The call goes to <base>/api<path>?<non-empty params>. Responses whose
// content type contains text/csv carry a CSVPayload; anything else is decoded
// as JSON. Run wraps Execute and reports failures as synthetic results.
//
// RenderCurl prints the equivalent curl command.
package explorer
