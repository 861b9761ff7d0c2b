package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// checkInput runs struct validation and turns the first violation into a
// KindValidation error naming the field.
func checkInput(v *validator.Validate, op string, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &client.Error{Op: op, Kind: client.KindValidation, Err: err}
	}

	fe := verrs[0]
	return &client.Error{
		Op:    op,
		Kind:  client.KindValidation,
		Field: fe.Field(),
		Err:   fmt.Errorf("%s is %s", fe.Field(), fe.Tag()),
	}
}

// classify guarantees that only *client.Error values leave the services.
func classify(op string, err error) error {
	var cerr *client.Error
	if errors.As(err, &cerr) {
		return err
	}
	return &client.Error{Op: op, Kind: client.KindUnknown, Err: err}
}
