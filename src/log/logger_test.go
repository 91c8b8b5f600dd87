// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// sigcost/src/log/logger_test.go
package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerBufferAndLevels(t *testing.T) {
	Init()
	SetLevel(INFO)

	Infof("forest %s evaluated", "0-1-2")
	require.Contains(t, GetLogs(), "forest 0-1-2 evaluated")

	// Messages below the level are dropped.
	before := len(GetLogs())
	Debugf("hidden %d", 42)
	require.Len(t, GetLogs(), before)

	SetLevel(DEBUG)
	Debugf("now visible")
	require.True(t, strings.Contains(GetLogs(), "now visible"))

	SetLevel(INFO)
	Sync()
}
