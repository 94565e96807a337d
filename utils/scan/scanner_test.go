// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanner_Scan(t *testing.T) {
	raw := "Z2QAH6zZ, aO+8sA==,last"
	advance, token, ok := Comma.Scan(raw)
	assert.True(t, ok)
	assert.Equal(t, "Z2QAH6zZ", token)
	assert.Equal(t, "aO+8sA==,last", advance)

	advance, token, ok = Comma.Scan(advance)
	assert.True(t, ok)
	assert.Equal(t, "aO+8sA==", token)

	advance, token, ok = Comma.Scan(advance)
	assert.False(t, ok)
	assert.Equal(t, "last", token)
	assert.Equal(t, "", advance)
}

func TestScanner_ScanSemicolon(t *testing.T) {
	raw := "packetization-mode=1; sprop-parameter-sets=Z2QAH6zZ"
	advance, token, ok := Semicolon.Scan(raw)
	assert.True(t, ok)
	assert.Equal(t, "packetization-mode=1", token)
	assert.Equal(t, "sprop-parameter-sets=Z2QAH6zZ", advance)
}
