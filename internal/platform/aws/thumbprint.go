package aws

import (
	"context"
	"crypto/sha1" // #nosec G505 -- IAM OIDC providers require SHA-1 thumbprints
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
)

// Thumbprint fetches the certificate chain of an OIDC issuer and returns
// the hex SHA-1 fingerprint of the chain's root certificate, as IAM expects
// when registering an identity provider.
//
// This is an environment-dependent step: the thumbprint must be recomputed
// whenever the issuer's certificate authority changes.
func Thumbprint(ctx context.Context, issuerURL string) (string, error) {
	u, err := url.Parse(issuerURL)
	if err != nil {
		return "", fmt.Errorf("invalid issuer URL %q: %w", issuerURL, err)
	}

	host := u.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "443")
	}

	dialer := &tls.Dialer{Config: &tls.Config{MinVersion: tls.VersionTLS12}}
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		return "", fmt.Errorf("failed to reach issuer %s: %w", host, err)
	}
	defer conn.Close()

	certs := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return "", fmt.Errorf("issuer %s presented no certificates", host)
	}

	// The last certificate in the presented chain is the closest to the
	// root; IAM matches on its fingerprint.
	root := certs[len(certs)-1]
	sum := sha1.Sum(root.Raw) // #nosec G401
	return hex.EncodeToString(sum[:]), nil
}
