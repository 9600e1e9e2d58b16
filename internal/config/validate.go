// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// ErrValidation is returned when a definition is invalid.
var ErrValidation = errors.New("invalid run definition")

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})

	return validateInst
}

// Validate checks the definition and reports every problem found.
func (d *Definition) Validate() error {
	var result *multierror.Error

	if err := validatorInstance().Struct(d); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return errors.Join(ErrValidation, err)
		}

		for _, fe := range ves {
			result = multierror.Append(result, fieldError(fe))
		}
	}

	if d.Host != nil {
		cmds := []struct {
			name string
			c    *CommandDefinition
		}{{"load", d.Host.Load}, {"run", d.Host.Run}, {"save", d.Host.Save}}

		for _, nc := range cmds {
			name, c := nc.name, nc.c
			if c == nil {
				continue
			}

			for _, code := range c.AbortExitCodes {
				if slices.Contains(c.SuccessExitCodes, code) || (len(c.SuccessExitCodes) == 0 && code == 0) {
					result = multierror.Append(result,
						fmt.Errorf("host.%s: exit code %d is both a success and an abort code", name, code))
				}
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrValidation, err)
	}

	return nil
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: is required", fe.Namespace())
	case "max", "min":
		return fmt.Errorf("%s: must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%s: failed %q validation", fe.Namespace(), fe.Tag())
	}
}
