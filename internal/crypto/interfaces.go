package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/key_vault_mock.go -package=mock

// KeyVault защищает корневые ключи синхронизации, пока они лежат на диске.
// Он ничего не знает о базе данных и сети: только запечатывает и вскрывает байты.
//
// Схема работы:
//
//	KEK    = Argon2id(passphrase, salt)        (Шаг 1)
//	Sealed = nonce ‖ AES-GCM(KEK, keyData)     (Шаг 2)
type KeyVault interface {
	// Seal шифрует plaintext ключом KEK через AES-GCM.
	// Результат (nonce ‖ ciphertext) можно хранить в SQLite.
	// Шаг 2.
	Seal(plaintext []byte) ([]byte, error)

	// Open returns the plaintext of a blob produced by Seal.
	// It fails if the blob was produced under a different passphrase or
	// has been modified.
	Open(sealed []byte) ([]byte, error)
}
