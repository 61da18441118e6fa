package httperr

import "errors"

// BusinessError es un fallo de regla de negocio identificado por código
// (invalid_state, barber_busy, insufficient_stock...). Viaja como error
// normal por los usecases y el handler lo traduce a HTTP.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrae el código cuando err es de negocio; "" si no lo es.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
