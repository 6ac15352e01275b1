// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/keypair"
)

// MaxMessageLength - longest message in bytes
const MaxMessageLength = 255

// payload layout:
//   [seed: 32][value: 8 big endian][message length: 1][message]
const (
	valueOffset  = keypair.SeedLength
	lengthOffset = valueOffset + 8
	headerLength = lengthOffset + 1
)

// padding is written as '.' since '=' is awkward in a URL fragment
const (
	padding    = "="
	urlPadding = "."
)

type payload struct {
	seed    []byte
	value   uint64
	message string
}

func (p payload) pack() string {
	buffer := make([]byte, 0, headerLength+len(p.message))
	buffer = append(buffer, p.seed...)
	buffer = binary.BigEndian.AppendUint64(buffer, p.value)
	buffer = append(buffer, byte(len(p.message)))
	buffer = append(buffer, p.message...)

	s := base64.URLEncoding.EncodeToString(buffer)
	return strings.ReplaceAll(s, padding, urlPadding)
}

func unpack(token string) (payload, error) {

	// a token may have been wrapped or chunked in transit
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, token)
	s = strings.TrimRight(s, padding+urlPadding)

	buffer, err := base64.RawURLEncoding.DecodeString(s)
	if nil != err {
		return payload{}, fault.ErrInvalidLink
	}
	if len(buffer) < headerLength {
		return payload{}, fault.ErrInvalidLink
	}

	n := int(buffer[lengthOffset])
	if len(buffer) != headerLength+n {
		return payload{}, fault.ErrInvalidLink
	}

	message := string(buffer[headerLength:])
	if err := validateMessage(message); nil != err {
		return payload{}, err
	}

	return payload{
		seed:    buffer[:valueOffset],
		value:   binary.BigEndian.Uint64(buffer[valueOffset:lengthOffset]),
		message: message,
	}, nil
}

func validateMessage(message string) error {
	if !utf8.ValidString(message) {
		return fault.ErrMessageNotUTF8
	}
	if len(message) > MaxMessageLength {
		return fault.ErrMessageTooLong
	}
	return nil
}
