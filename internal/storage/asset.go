package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

// Scenario ids are looked up by name from the service config.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

// ValidatingSpec is the payload of an asset file. A scenario is rejected at
// load time when Validate fails, before any world is populated from it.
type ValidatingSpec interface {
	Validate() error
}

// Identifier names a stored asset, for example the "arena" scenario picked by
// the scenario section of the service config.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset is the on-disk envelope of every scenario file.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier.String()) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}
