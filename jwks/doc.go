/*
Package jwks provides the key sets that sign Casdoor tokens.

Provider locates the JWKS through the Casdoor discovery document, or uses the
URI given with WithCustomJWKSURI, and fetches it on every call. CachingProvider
keeps the fetched set for a TTL.

Both expose KeyFunc, which plugs into token.WithKeyFunc:

	provider, err := jwks.NewCachingProvider(
	    []jwks.ProviderOption{jwks.WithEndpoint("https://door.example.com")},
	    jwks.WithCacheTTL(5*time.Minute),
	)
	if err != nil {
	    log.Fatal(err)
	}

	v, err := token.New(token.WithKeyFunc(provider.KeyFunc))
*/
package jwks
