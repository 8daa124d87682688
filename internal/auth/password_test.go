package auth

import "testing"

// ハッシュと検証のラウンドトリップを検証
func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(4)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash should not equal the plaintext")
	}

	if !h.Verify(hash, "secret123") {
		t.Error("Verify(correct password) = false, want true")
	}
	if h.Verify(hash, "wrong-password") {
		t.Error("Verify(wrong password) = true, want false")
	}
}

// 同一パスワードでもソルトによりハッシュが異なることを検証
func TestPasswordHasher_HashesDiffer(t *testing.T) {
	h := NewPasswordHasher(4)

	hash1, _ := h.Hash("secret123")
	hash2, _ := h.Hash("secret123")

	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ")
	}
}

// コスト0以下はデフォルトコストにフォールバックすることを検証
func TestNewPasswordHasher_DefaultCost(t *testing.T) {
	h := NewPasswordHasher(0)
	if h.cost <= 0 {
		t.Errorf("cost = %d, want positive default", h.cost)
	}
}
