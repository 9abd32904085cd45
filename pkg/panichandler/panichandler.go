// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package panichandler

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// PanicHandler converts a recovered value into an error and logs the stack.
// Call it as PanicHandler("where", recover()) from a deferred func.
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	logrus.WithField("where", debugStr).Errorf("[panic] %v\n%s", recoverVal, string(debug.Stack()))
	if err, ok := recoverVal.(error); ok {
		return fmt.Errorf("panic in %s: %w", debugStr, err)
	}
	return fmt.Errorf("panic in %s: %v", debugStr, recoverVal)
}
