package zkproof

import (
	"testing"

	"veilpay/internal/testutil"
)

// Adversarial-input contract: no panic, no hang, and any non-nil result maps
// to one of the sentinel kinds regardless of blob content.
func FuzzDeserialize(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 64))
	f.Add(make([]byte, 512))
	f.Add(buildBlob())
	f.Fuzz(func(t *testing.T, data []byte) {
		data = testutil.CapBytes(data, testutil.DefaultMaxFuzzBytes)
		testutil.WithTimeout(t, testutil.DefaultFuzzTimeout, func() {
			proof, err := Deserialize(data)
			if err != nil && proof != nil {
				t.Fatalf("partial proof returned alongside error")
			}
			if err == nil && proof == nil {
				t.Fatalf("nil proof without error")
			}
		})
	})
}

func FuzzVerifyTransferProof(f *testing.F) {
	blob := buildBlob()
	f.Add(blob, byte(0x11), byte(0x21))
	f.Add([]byte{}, byte(0), byte(0))
	f.Fuzz(func(t *testing.T, data []byte, a, b byte) {
		data = testutil.CapBytes(data, testutil.DefaultMaxFuzzBytes)
		testutil.WithTimeout(t, testutil.DefaultFuzzTimeout, func() {
			var amount, senderAfter, other Commitment
			for i := range amount {
				amount[i] = a
				senderAfter[i] = b
				other[i] = a ^ b ^ 0x5A
			}
			err1 := VerifyTransferProof(data, &amount, &senderAfter, &other, &other, &other)
			err2 := VerifyTransferProof(data, &amount, &senderAfter, &other, &other, &other)
			if (err1 == nil) != (err2 == nil) {
				t.Fatalf("verification not deterministic")
			}
		})
	})
}
