package frost

// Core FROST derivations: Lagrange coefficients, per-participant binding
// factors, the aggregated group commitment, the Schnorr challenge and the
// partial signature. All scalar work goes through the Curve's scalar
// engine; callers own the lifetime of the secret inputs.

// ComputeLagrangeCoefficient evaluates the Lagrange basis polynomial for
// id at zero over the given signing set:
//
//	lambda_i = prod_{j != i} x_j / (x_j - x_i)  (mod n)
//
// Participants are identified by their uint16 identifiers interpreted as
// scalars. The signing set must contain id and must not contain
// duplicates; a duplicate makes a denominator vanish and surfaces as
// ErrZeroInverse.
func ComputeLagrangeCoefficient(c Curve, id uint16, participants []uint16) ([ScalarSize]byte, error) {
	if FindID(participants, id) < 0 {
		return [ScalarSize]byte{}, ErrSelfNotInList
	}

	xi := EncodeIdentifier(id)
	lambda := EncodeIdentifier(1)

	for _, pj := range participants {
		if pj == id {
			continue
		}
		xj := EncodeIdentifier(pj)
		den, err := c.ScalarInvert(c.ScalarSub(xj, xi))
		if err != nil {
			return [ScalarSize]byte{}, err
		}
		lambda = c.ScalarMul(lambda, c.ScalarMul(xj, den))
	}
	return lambda, nil
}

// ComputeBindingFactors derives one binding factor per commitment entry,
// in list order. Every factor hashes the same message hash and encoded
// list but the entry's own identifier, so each participant's nonce pair
// is bound to its position in this specific round.
func ComputeBindingFactors(c Curve, h Hasher, msgHash []byte, entries []CommitmentEntry) [][ScalarSize]byte {
	encoded := EncodeCommitmentList(entries)
	factors := make([][ScalarSize]byte, len(entries))
	for i, e := range entries {
		signerID := EncodeIdentifier(e.ID)
		factors[i] = h.H1(c, msgHash, encoded, signerID[:])
	}
	return factors
}

// ComputeGroupCommitment aggregates the round-one commitments into the
// group nonce point:
//
//	R = sum_i (D_i + rho_i * E_i)
//
// entries and bindingFactors must be index-aligned.
func ComputeGroupCommitment(c Curve, entries []CommitmentEntry, bindingFactors [][ScalarSize]byte) ([PointSize]byte, error) {
	if len(entries) == 0 || len(entries) != len(bindingFactors) {
		return [PointSize]byte{}, ErrInvalidLength
	}

	var sum [PointSize]byte
	for i, e := range entries {
		rhoBinding, err := c.ScalarMult(bindingFactors[i], e.Binding)
		if err != nil {
			return [PointSize]byte{}, err
		}
		term, err := c.PointAdd(e.Hiding, rhoBinding)
		if err != nil {
			return [PointSize]byte{}, err
		}
		if i == 0 {
			sum = term
			continue
		}
		sum, err = c.PointAdd(sum, term)
		if err != nil {
			return [PointSize]byte{}, err
		}
	}
	return sum, nil
}

// ComputeChallenge derives the Schnorr challenge binding the group
// commitment, the group public key and the message hash.
func ComputeChallenge(c Curve, h Hasher, r, groupKey [PointSize]byte, msgHash []byte) [ScalarSize]byte {
	return h.H2(c, r[:], groupKey[:], msgHash)
}

// ComputePartialSignature evaluates this participant's share of the
// signature scalar:
//
//	z_i = hiding_nonce + binding_nonce*rho_i + secret_share*challenge*lambda_i  (mod n)
//
// The secret inputs are read but never retained or wiped here; the
// caller destroys them.
func ComputePartialSignature(
	c Curve,
	hidingNonce, bindingNonce, bindingFactor, secretShare, challenge [ScalarSize]byte,
	id uint16,
	participants []uint16,
) ([ScalarSize]byte, error) {
	lambda, err := ComputeLagrangeCoefficient(c, id, participants)
	if err != nil {
		return [ScalarSize]byte{}, err
	}

	z := c.ScalarMul(bindingNonce, bindingFactor)
	z = c.ScalarAdd(hidingNonce, z)
	share := c.ScalarMul(secretShare, challenge)
	share = c.ScalarMul(share, lambda)
	z = c.ScalarAdd(z, share)

	ZeroizeBytes(lambda[:])
	ZeroizeBytes(share[:])
	return z, nil
}

// FindID returns the index of id in ids, or -1.
func FindID(ids []uint16, id uint16) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
