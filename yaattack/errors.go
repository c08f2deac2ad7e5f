package yaattack

import "errors"

var (
	ErrAttackInconclusive = errors.New("[ATTACK] neither factorization nor direct root recovered the plaintext")
	ErrInvalidTarget      = errors.New("[ATTACK] invalid public key or ciphertext")
)
