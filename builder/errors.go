// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package builder

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cnotch/actiongraph/config"
)

// ConfigurationError reports a schema violation while parsing one
// configuration node: a required key missing, or a node of the wrong
// shape.
type ConfigurationError struct {
	Message string
	Node    config.Node
}

func (e *ConfigurationError) Error() string {
	if e.Node == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (at %s)", e.Message, e.Node.AsString())
}

func configurationError(node config.Node, format string, args ...interface{}) error {
	return errors.WithStack(&ConfigurationError{Message: fmt.Sprintf(format, args...), Node: node})
}

// BuildError reports that no factory or decorator was registered for
// a requested type name.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string { return e.Message }

func buildError(format string, args ...interface{}) error {
	return errors.WithStack(&BuildError{Message: fmt.Sprintf(format, args...)})
}
