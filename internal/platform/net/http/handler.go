package http

import (
	"net/http"

	"skyvault/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return wrap(out)
	})
}

// FormHandler adapts a form-bound handler to a platform Handler
func FormHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseForm[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return wrap(out)
	})
}

// CallHandler adapts a handler that takes no request body
func CallHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return wrap(out)
	})
}

// wrap lets handlers return a ready Response to opt out of the envelope
func wrap(out any) Response {
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
