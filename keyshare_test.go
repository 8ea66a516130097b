package frost

import (
	"errors"
	"testing"
)

func validTestShare(t *testing.T) *KeyShare {
	t.Helper()
	c, _ := NewCurve(CurveBabyJubjub)
	groupKey, err := c.BaseMult(scalarFromUint64(424242))
	if err != nil {
		t.Fatalf("BaseMult failed: %v", err)
	}
	return &KeyShare{
		CurveID:        c.ID(),
		Identifier:     3,
		Threshold:      2,
		MaxSigners:     5,
		GroupPublicKey: groupKey,
		SecretShare:    scalarFromUint64(123456789),
	}
}

func TestKeyShareRecordRoundtrip(t *testing.T) {
	ks := validTestShare(t)

	rec := ks.Encode()
	if rec[recOffInitialized] != recInitializedMarker {
		t.Fatal("encoded record missing initialized marker")
	}

	got, err := DecodeKeyShare(rec)
	if err != nil {
		t.Fatalf("DecodeKeyShare failed: %v", err)
	}
	if *got != *ks {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, ks)
	}
}

func TestDecodeUninitializedRecord(t *testing.T) {
	var rec [KeyShareRecordSize]byte
	if _, err := DecodeKeyShare(rec); !errors.Is(err, ErrNoKeys) {
		t.Fatalf("expected ErrNoKeys, got %v", err)
	}
}

func TestKeyShareValidate(t *testing.T) {
	base := validTestShare(t)

	if _, err := base.Validate(); err != nil {
		t.Fatalf("valid share rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(ks *KeyShare)
		want   error
	}{
		{"unknown curve", func(ks *KeyShare) { ks.CurveID = 0x7f }, ErrUnsupportedCurve},
		{"zero identifier", func(ks *KeyShare) { ks.Identifier = 0 }, ErrZeroIdentifier},
		{"threshold above max", func(ks *KeyShare) { ks.Threshold = 6 }, ErrParticipantCount},
		{"threshold below two", func(ks *KeyShare) { ks.Threshold = 1 }, ErrParticipantCount},
		{"max above curve limit", func(ks *KeyShare) { ks.MaxSigners = 200 }, ErrParticipantCount},
		{"zero secret share", func(ks *KeyShare) { ks.SecretShare = [ScalarSize]byte{} }, ErrScalarEncoding},
	}
	for _, tc := range cases {
		ks := *base
		tc.mutate(&ks)
		if _, err := ks.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	bad := *base
	for i := range bad.GroupPublicKey {
		bad.GroupPublicKey[i] = 0xff
	}
	bad.GroupPublicKey[PointSize-1] = 0x7f
	if _, err := bad.Validate(); err == nil {
		t.Fatal("invalid group key must be rejected")
	}
}

func TestMemoryKeyStoreErase(t *testing.T) {
	store := NewMemoryKeyStore()
	ks := validTestShare(t)

	if err := store.Store(ks.Encode()); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Erase(); err != nil {
		t.Fatalf("Erase failed: %v", err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for i, b := range rec {
		if b != 0 {
			t.Fatalf("byte %d not wiped", i)
		}
	}
}

func TestSignerLoadsProvisionedStore(t *testing.T) {
	store := NewMemoryKeyStore()
	ks := validTestShare(t)
	if err := store.Store(ks.Encode()); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	s, err := NewSigner(SignerConfig{Store: store})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	if !s.HasKeys() {
		t.Fatal("signer did not load the stored share")
	}
	id, err := s.Identifier()
	if err != nil || id != ks.Identifier {
		t.Fatalf("identifier mismatch: got %d err=%v", id, err)
	}

	if err := s.ClearKeys(); err != nil {
		t.Fatalf("ClearKeys failed: %v", err)
	}
	if s.HasKeys() {
		t.Fatal("keys survived ClearKeys")
	}
	rec, _ := store.Load()
	if rec != ([KeyShareRecordSize]byte{}) {
		t.Fatal("store record not erased")
	}
}

func TestProvisionRequiresConfirmation(t *testing.T) {
	deny := ConfirmerFunc(func(req ConfirmRequest) bool {
		return req.Operation != ConfirmProvision
	})
	s, err := NewSigner(SignerConfig{Confirmer: deny})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	if err := s.ProvisionKeyShare(validTestShare(t)); !errors.Is(err, ErrUserRejected) {
		t.Fatalf("expected ErrUserRejected, got %v", err)
	}
	if s.HasKeys() {
		t.Fatal("rejected provisioning stored a share")
	}
}
