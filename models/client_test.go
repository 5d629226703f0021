package models

import (
	"testing"

	"servicelink/utils"
)

func testAddress(id string) Address {
	return Address{
		ID:           id,
		Label:        "Home",
		AddressLine1: "123 Main St",
		City:         "Bangalore",
		State:        "Karnataka",
		Pincode:      "560001",
		Coordinates:  Coordinates{Latitude: 12.9716, Longitude: 77.5946},
	}
}

func defaults(p ClientProfile) []string {
	var ids []string
	for _, a := range p.Addresses {
		if a.IsDefault {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestClientProfile_AddressInvariant(t *testing.T) {
	t.Parallel()

	var p ClientProfile
	if _, err := p.AddAddress(testAddress("a1")); err != nil {
		t.Fatalf("AddAddress failed: %v", err)
	}
	if got := defaults(p); len(got) != 1 || got[0] != "a1" {
		t.Fatalf("expected first address to become default, got %v", got)
	}

	second := testAddress("a2")
	second.IsDefault = true
	if _, err := p.AddAddress(second); err != nil {
		t.Fatalf("AddAddress failed: %v", err)
	}
	if got := defaults(p); len(got) != 1 || got[0] != "a2" {
		t.Fatalf("expected a2 to be the only default, got %v", got)
	}

	if err := p.SetDefaultAddress("a1"); err != nil {
		t.Fatalf("SetDefaultAddress failed: %v", err)
	}
	if got := defaults(p); len(got) != 1 || got[0] != "a1" {
		t.Fatalf("expected a1 to be the only default, got %v", got)
	}

	if err := p.RemoveAddress("a1"); err != nil {
		t.Fatalf("RemoveAddress failed: %v", err)
	}
	if got := defaults(p); len(got) != 1 || got[0] != "a2" {
		t.Fatalf("expected a2 promoted to default, got %v", got)
	}

	if err := p.RemoveAddress("missing"); !utils.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestAddress_Validate(t *testing.T) {
	t.Parallel()

	bad := testAddress("x")
	bad.Pincode = "56001"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected 5-digit pincode to be rejected")
	}

	blank := testAddress("x")
	blank.City = " "
	if err := blank.Validate(); err == nil {
		t.Fatal("expected blank city to be rejected")
	}
}

func TestNormalizeAddresses(t *testing.T) {
	t.Parallel()

	a, b := testAddress("a"), testAddress("b")
	a.IsDefault, b.IsDefault = true, true
	out, err := NormalizeAddresses([]Address{a, b})
	if err != nil {
		t.Fatalf("NormalizeAddresses failed: %v", err)
	}
	if got := defaults(ClientProfile{Addresses: out}); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected first flagged address to win, got %v", got)
	}

	if _, err := NormalizeAddresses([]Address{testAddress("dup"), testAddress("dup")}); err == nil {
		t.Fatal("expected duplicate ids to be rejected")
	}
}

func TestAccount_ProfileComplete(t *testing.T) {
	t.Parallel()

	client := NewAccount(User{ID: "c", Role: RoleClient})
	if client.ProfileComplete() {
		t.Fatal("expected client without addresses to be incomplete")
	}
	client.Client.Addresses = []Address{testAddress("a")}
	if !client.ProfileComplete() {
		t.Fatal("expected client with an address to be complete")
	}

	worker := NewAccount(User{ID: "w", Role: RoleWorker})
	if worker.ProfileComplete() {
		t.Fatal("expected worker without skills to be incomplete")
	}
	worker.Worker.Skills = []Skill{{ID: "s", Name: "Plumber"}}
	if !worker.ProfileComplete() {
		t.Fatal("expected worker with a skill to be complete")
	}

	if err := (Account{}).Validate(); err == nil {
		t.Fatal("expected empty account to be invalid")
	}
}
