package security

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPassword(hash, "hunter2hunter2") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("wrong password accepted")
	}
}
