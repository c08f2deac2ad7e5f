package yaattack

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/YaCodeDev/GoYaToyRSA/yamath"
	"github.com/YaCodeDev/GoYaToyRSA/yarsa"
)

// Recover tries to read ct knowing only pub. It fails with
// ErrAttackInconclusive (422) when no technique recovers a single block.
//
// The context only bounds cache I/O; the arithmetic is not cancellable.
func (a *Attacker) Recover(
	ctx context.Context,
	ct *yarsa.Ciphertext,
	pub yarsa.PublicKey,
) (*Result, yaerrors.Error) {
	if pub.N == nil || pub.E == nil || pub.N.Sign() <= 0 || pub.E.Sign() <= 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidTarget,
			"[ATTACK] public key needs positive n and e",
		)
	}

	if err := ct.Validate(pub.N); err != nil {
		return nil, err.Wrap("[ATTACK] recover")
	}

	log := a.log.WithPublicKey(pub.N, pub.E)

	if result := a.byFactorization(ctx, ct, pub, log); result != nil {
		return result, nil
	}

	if result := a.byDirectRoot(ct, pub, log); result != nil {
		return result, nil
	}

	return nil, yaerrors.FromError(
		http.StatusUnprocessableEntity,
		ErrAttackInconclusive,
		fmt.Sprintf("[ATTACK] %s, factor search bound %s", pub, a.bound),
	)
}

func (a *Attacker) byFactorization(
	ctx context.Context,
	ct *yarsa.Ciphertext,
	pub yarsa.PublicKey,
	log yalogger.Logger,
) *Result {
	p, q, ok := a.factor(ctx, pub.N, log)
	if !ok {
		log.Infof("No factor of n up to %s", a.bound)

		return nil
	}

	d, ok := yamath.ModInverse(pub.E, yamath.Totient(p, q))
	if !ok {
		log.Infof("Factored n = %s·%s but e has no inverse mod φ", p, q)

		return nil
	}

	plain, err := yarsa.DecryptMessage(ct, d, pub.N)
	if err != nil {
		log.Warnf("Factored n but decryption failed: %v", err)

		return nil
	}

	log.Infof("Factored n = %s·%s", p, q)

	return &Result{
		Method:          MethodFactorization,
		Plaintext:       plain,
		Text:            yarsa.DecodeText(plain),
		Factors:         [2]*big.Int{p, q},
		PrivateExponent: d,
		RecoveredBlocks: len(ct.Blocks),
		TotalBlocks:     len(ct.Blocks),
	}
}

func (a *Attacker) byDirectRoot(
	ct *yarsa.Ciphertext,
	pub yarsa.PublicKey,
	log yalogger.Logger,
) *Result {
	var root func(*big.Int) *big.Int

	switch {
	case pub.E.IsInt64() && pub.E.Int64() == 3:
		root = yamath.Cbrt
	case pub.E.IsInt64() && pub.E.Int64() == 2:
		root = yamath.Sqrt
	default:
		log.Debug("Direct root skipped, e is neither 2 nor 3")

		return nil
	}

	var (
		plain     []byte
		recovered int
	)

	for i, block := range ct.Blocks {
		m := root(block)

		if new(big.Int).Exp(m, pub.E, nil).Cmp(block) != 0 {
			log.Debugf("Block %d is not a perfect power, it wrapped mod n", i)

			continue
		}

		chunk, err := yamath.ToBytes(m, ct.BlockWidth(i))
		if err != nil {
			log.Debugf("Root of block %d does not fit %d bytes", i, ct.BlockWidth(i))

			continue
		}

		plain = append(plain, chunk...)
		recovered++
	}

	if recovered == 0 {
		log.Info("Direct root recovered no block")

		return nil
	}

	log.Infof("Direct root recovered %d of %d blocks", recovered, len(ct.Blocks))

	return &Result{
		Method:          MethodDirectRoot,
		Plaintext:       plain,
		Text:            yarsa.DecodeText(plain),
		RecoveredBlocks: recovered,
		TotalBlocks:     len(ct.Blocks),
		Partial:         recovered < len(ct.Blocks),
	}
}
