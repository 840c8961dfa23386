// Package bind provides JSON and form bind plus validation helpers for handlers
package bind

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "skyvault/internal/platform/errors"
	"skyvault/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and form/json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer wire tag names in messages, form first then json
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tn := range []string{"form", "json"} {
				tag := fld.Tag.Get(tn)
				if tag == "" || tag == "-" {
					continue
				}
				if idx := strings.Index(tag, ","); idx >= 0 {
					tag = tag[:idx]
				}
				return tag
			}
			return fld.Name
		})

		_ = entrans.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// validationMessage extracts a translated message from a validator error
func validationMessage(err error) (field, msg string) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "", err.Error()
	}
	fe := verrs[0]
	return fe.Field(), fe.Translate(Get().Translator)
}

// validate runs the struct validators and maps failures to project errors
func validate(dst any) error {
	if err := Get().Validator.Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return perr.Validationf("validation error")
		}
		field, msg := validationMessage(err)
		return perr.WithField(perr.Validationf("%s", msg), field)
	}
	return nil
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero T
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.Validationf("invalid JSON: %v", err)
	}
	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// ParseForm decodes an application/x-www-form-urlencoded body into T by `form`
// tags, validates it, and maps failures to project errors. Supported field
// kinds are string and bool; a bool field is true when the posted value is
// "on" or parses as true (HTML checkbox semantics)
func ParseForm[T any](r *http.Request) (T, error) {
	var zero T
	if err := r.ParseForm(); err != nil {
		return zero, perr.Validationf("invalid form body: %v", err)
	}

	var dst T
	v := reflect.ValueOf(&dst).Elem()
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return zero, perr.Internalf("bind.ParseForm requires a struct target")
	}

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("form")
		if tag == "" || tag == "-" {
			continue
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		raw := strings.TrimSpace(r.PostFormValue(tag))
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(raw)
		case reflect.Bool:
			f.SetBool(raw == "on" || raw == "true" || raw == "1")
		}
	}

	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
