package postgres

import "errors"

var ErrFieldsNotAllowedToUpdate = errors.New("provided fields that are not allowed to update")
