package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnauthorized = errors.New("session unauthorized")
var ErrNotFound = errors.New("record not found")
var ErrUpstreamDown = errors.New("upstream registry unreachable")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoCategories = errors.New("no program categories exist")
var ErrNoClients = errors.New("no clients registered")
var ErrNoPrograms = errors.New("no programs exist")

// FieldErrors maps field names to validation messages. It is used both for
// form validation failures (caught before any network call) and for
// structured 4xx bodies returned by the upstream registry.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors unwraps err into FieldErrors when possible.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
