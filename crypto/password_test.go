package crypto

import "testing"

func TestGenerateAndCheckPassword(t *testing.T) {
	hash, err := GenerateHash("s3cret-Pass!")
	if err != nil {
		t.Fatalf("GenerateHash() error = %v", err)
	}

	if !CheckPassword("s3cret-Pass!", hash) {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("s3cret-Pass!", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() = true for malformed hash")
	}
}
