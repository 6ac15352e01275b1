// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cashlink/merkle"
)

func TestDigest(t *testing.T) {
	d := merkle.NewDigest([]byte("hello"))
	assert.False(t, d.IsZero(), "digest of data is zero")
	assert.True(t, merkle.Digest{}.IsZero(), "empty digest not zero")

	// known SHA3-256("hello")
	expected := "3338be694f50c5f338814986cdf0686453a888b84f424d792af4b9202398f392"
	assert.Equal(t, expected, fmt.Sprintf("%s", d), "wrong hex")
	assert.Equal(t, "<SHA3-256:"+expected+">", fmt.Sprintf("%#v", d), "wrong go string")
}

func TestTextRoundTrip(t *testing.T) {
	d := merkle.NewDigest([]byte{1, 2, 3})

	text, err := d.MarshalText()
	assert.Nil(t, err, "marshal")

	var recovered merkle.Digest
	err = recovered.UnmarshalText(text)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, d, recovered, "round trip mismatch")

	err = recovered.UnmarshalText([]byte("abcd"))
	assert.Equal(t, merkle.ErrNotDigest, err, "short text accepted")
}

func TestDigestFromBytes(t *testing.T) {
	var d merkle.Digest
	assert.Equal(t, merkle.ErrNotDigest, merkle.DigestFromBytes(&d, []byte{1}), "short buffer accepted")

	buffer := make([]byte, merkle.DigestLength)
	buffer[0] = 0xff
	assert.Nil(t, merkle.DigestFromBytes(&d, buffer), "valid buffer rejected")
	assert.Equal(t, byte(0xff), d[0], "wrong first byte")
}
