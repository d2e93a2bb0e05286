package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionString_RoundTrip(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://dayrail@localhost:5432/dayrail?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestCredential_SetEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, secret := range []string{"", "   "} {
		if err := Connection.Set(secret); err == nil {
			t.Errorf("Set(%q) should return an error", secret)
		}
	}
}

func TestCredential_GetNotFound(t *testing.T) {
	gokeyring.MockInit()

	c := Credential{Service: "dayrail-test", Account: "missing"}
	if _, err := c.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestCredential_Delete(t *testing.T) {
	gokeyring.MockInit()

	c := Credential{Service: "dayrail-test", Account: "conn"}
	if err := c.Set("host=localhost"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := c.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := c.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Delete(), Get() error = %v, want %v", err, ErrNotFound)
	}
	if err := c.Delete(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestCredential_Isolation(t *testing.T) {
	gokeyring.MockInit()

	a := Credential{Service: "dayrail-test", Account: "a"}
	b := Credential{Service: "dayrail-test", Account: "b"}
	if err := a.Set("secret-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("b.Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestCredential_Unavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	defer gokeyring.MockInit()

	if _, err := Connection.Get(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
