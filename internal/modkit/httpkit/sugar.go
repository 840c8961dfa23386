package httpkit

import (
	"net/http"

	phttp "skyvault/internal/platform/net/http"
)

// GetJSON mounts a pure JSON handler under GET
func GetJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.JSONHandler(h))
}

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PostForm mounts a form-bound handler under POST
func PostForm[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.FormHandler(h))
}

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.CallHandler(h))
}

// Post registers a no-body handler and uses the envelope adapter
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.CallHandler(h))
}

// GetRawFunc registers a handler that owns the ResponseWriter, for streamed bodies
func GetRawFunc(r Router, path string, h func(http.ResponseWriter, *http.Request)) {
	r.Get(path, h)
}

// PostRawFunc registers a POST handler that owns the ResponseWriter, for streamed bodies
func PostRawFunc(r Router, path string, h func(http.ResponseWriter, *http.Request)) {
	r.Post(path, h)
}
