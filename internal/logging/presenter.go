// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperrors "sqlconsole/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(apperrors.MessageOf(err))
	if context == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", context, msg)
}
