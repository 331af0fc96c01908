/*
Package middleware protects net/http handlers with Casdoor access tokens.

	v, err := token.NewFromConfig(cfg)
	if err != nil {
	    log.Fatal(err)
	}

	m, err := middleware.New(v.ValidateToken)
	if err != nil {
	    log.Fatal(err)
	}

	http.Handle("/api/", m.CheckJWT(apiHandler))

Inside the protected handler the validated claims are read back with
ClaimsFromContext:

	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
	    http.Error(w, "failed to get claims", http.StatusInternalServerError)
	    return
	}
	fmt.Fprintf(w, "hello %s", claims.DisplayName)

Requests without a token are answered with 400 and requests with a rejected
token with 401, unless WithErrorHandler installs another ErrorHandler.
*/
package middleware
