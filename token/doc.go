/*
Package token verifies access tokens issued by Casdoor.

Casdoor signs its JWTs with the private key of the application's certificate.
A Validator checks the signature, the expiry and the optional issuer and
audience, then decodes the payload into Claims, which carry the Casdoor user
the token was issued for.

	v, err := token.New(
	    token.WithCertificate(cfg.Certificate),
	    token.WithAudience(cfg.ClientID),
	)
	if err != nil {
	    log.Fatal(err)
	}

	claims, err := v.ParseToken(ctx, accessToken)
	if err != nil {
	    // errors.Is(err, token.ErrInvalidToken)
	}
	fmt.Println(claims.User.FullName())

Keys can also come from a JWKS endpoint through WithKeyFunc and
jwks.Provider.KeyFunc. ValidateToken has the signature the middleware
package expects.
*/
package token
