package handlers

import (
	"log"

	"github.com/go-logr/logr/funcr"

	"github.com/AayushV4/gov-doc-rag/internal/webclient"
)

// Serve runs the query web client until the listener fails.
func Serve() error {
	cfg, err := webclient.LoadConfig()
	if err != nil {
		return err
	}

	logger := funcr.New(func(prefix, args string) {
		if prefix != "" {
			log.Printf("%s: %s", prefix, args)
		} else {
			log.Print(args)
		}
	}, funcr.Options{})

	api := webclient.NewAPIClient(cfg.APIEndpoint)
	return webclient.NewServer(cfg, api, logger).ListenAndServe()
}
