package inference

import "net/http"

// HTTPSender performs a single HTTP round trip. *http.Client satisfies it;
// connection pooling, TLS and proxies are its concern.
//
//go:generate mockgen -source=sender.go -destination=mock_sender.go -package=inference
type HTTPSender interface {
	Do(req *http.Request) (*http.Response, error)
}
