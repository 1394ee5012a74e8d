// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `cbor:"name"`
	Count int64  `cbor:"count"`
}

func TestMarshalRoundTrip(t *testing.T) {
	in := sample{Name: "delta", Count: 42}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out sample
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	v := map[string]int{"zebra": 1, "apple": 2, "mango": 3}
	a, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated Marshal of the same map differs")
	}
}

func TestEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(sample{Name: "sig", Count: 7}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var out sample
	if err := NewDecoder(&buf).Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Name != "sig" || out.Count != 7 {
		t.Errorf("decoded %+v", out)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]string{"op": "patch"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diag, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diag, "patch") {
		t.Errorf("diagnostic %q does not mention the value", diag)
	}
}
