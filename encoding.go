// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "encoding/base64"

// decodeBase64 accepts both padded and unpadded input for an alphabet.
func decodeBase64(s string, padded, raw *base64.Encoding) ([]byte, bool) {
	if dec, err := padded.DecodeString(s); err == nil {
		return dec, true
	}
	dec, err := raw.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return dec, true
}

// Base64Encode encodes a as standard base64.
func Base64Encode(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return nil
	}
	return NewString(base64.StdEncoding.EncodeToString([]byte(s.v)))
}

// Base64Decode decodes standard base64; malformed input is undefined.
func Base64Decode(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return nil
	}
	dec, ok := decodeBase64(s.v, base64.StdEncoding, base64.RawStdEncoding)
	if !ok {
		return nil
	}
	return NewString(string(dec))
}

// Base64IsValid reports whether a decodes as standard base64.
func Base64IsValid(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return NewBoolean(false)
	}
	_, ok = decodeBase64(s.v, base64.StdEncoding, base64.RawStdEncoding)
	return NewBoolean(ok)
}

// Base64URLEncode encodes a with the URL-safe alphabet.
func Base64URLEncode(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return nil
	}
	return NewString(base64.URLEncoding.EncodeToString([]byte(s.v)))
}

// Base64URLDecode decodes URL-safe base64.
func Base64URLDecode(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return nil
	}
	dec, ok := decodeBase64(s.v, base64.URLEncoding, base64.RawURLEncoding)
	if !ok {
		return nil
	}
	return NewString(string(dec))
}

// JSONUnmarshal parses a JSON string into a value.
func JSONUnmarshal(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return nil
	}
	return parseJSON(s.v, false)
}

// JSONMarshal serializes a as a JSON string.
func JSONMarshal(a Value) Value {
	if a == nil {
		return nil
	}
	return NewString(DumpJSON(a))
}

// JSONIsValid reports whether a parses as JSON.
func JSONIsValid(a Value) Value {
	s, ok := a.(*String)
	if !ok {
		return NewBoolean(false)
	}
	return NewBoolean(parseJSON(s.v, false) != nil)
}
