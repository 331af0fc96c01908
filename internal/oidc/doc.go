/*
Package oidc fetches the OpenID Connect discovery document Casdoor serves at

	<endpoint>/.well-known/openid-configuration

The jwks package uses it to find the key set that signs Casdoor tokens, and
casdoorctl uses the issuer it advertises.
*/
package oidc
