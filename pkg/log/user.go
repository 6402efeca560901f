// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback on the command line
type UserLogger struct {
	log     zerolog.Logger
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// 🎯 NewUserLogger creates a user logger writing to w
func NewUserLogger(w io.Writer, zlog zerolog.Logger) *UserLogger {
	return &UserLogger{
		log:     zlog,
		success: pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(w),
		warning: pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(w),
		failure: pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(w),
	}
}

// Success reports a finished step
func (u *UserLogger) Success(msg string) {
	u.success.Println(msg)
	u.log.Info().Msg(msg)
}

// Warning reports something suspicious that does not stop the run
func (u *UserLogger) Warning(msg string) {
	u.warning.Println(msg)
	u.log.Warn().Msg(msg)
}

// Failure reports a fatal error
func (u *UserLogger) Failure(description string, err error) {
	if err != nil {
		u.failure.Println(description + ": " + err.Error())
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.failure.Println(description)
	u.log.Error().Msg(description)
}
