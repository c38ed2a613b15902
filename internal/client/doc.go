// Package client is a typed Go client for the extraction API.
//
// Multi-id reads issue one GET per id, at most Concurrency at a time, and
// report each id's result positionally:
//
//	c, _ := client.New("https://docs.example.com", client.WithToken(token))
//	outcomes, _ := c.FetchExtractions(ctx, ids)
//	for _, o := range outcomes {
//		if !o.OK() {
//			// o.Err is an *APIError for non-2xx responses
//		}
//	}
//
// The client never retries.
package client
