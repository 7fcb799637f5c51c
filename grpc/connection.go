package grpc

import (
	"crypto/tls"
	"crypto/x509"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// GetGrpcConnection dials a node, using TLS whenever the port looks like 443.
func GetGrpcConnection(grpcUri string) (*grpc.ClientConn, error) {
	transportCredentials := grpc.WithTransportCredentials(insecure.NewCredentials())
	if strings.HasSuffix(grpcUri, "443") {
		// The server isn't known ahead of time, so start from an empty pool.
		certPool := x509.NewCertPool()

		creds := credentials.NewTLS(&tls.Config{
			RootCAs:    certPool,
			MinVersion: tls.VersionTLS12,
		})
		transportCredentials = grpc.WithTransportCredentials(creds)
	}

	opts := []grpc.DialOption{
		transportCredentials,
	}

	return grpc.Dial(
		grpcUri,
		opts...,
	)
}
