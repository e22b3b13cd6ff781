package kb

import (
	"errors"
	"testing"

	"github.com/biodynlabs/cellculture-simulator/model"
)

func TestBuiltinRegistryContainsKnownLines(t *testing.T) {
	reg := NewBuiltinRegistry()

	for _, name := range []string{"HeLa", "MCF-7", "A549", "HEK293", "Jurkat"} {
		p, err := reg.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if p.Name != name {
			t.Errorf("Get(%q).Name = %q", name, p.Name)
		}
		sum := p.G1Duration + p.SDuration + p.G2Duration + p.MDuration
		if sum != p.DoublingTime {
			t.Errorf("%s: phase durations sum to %v, doubling time %v", name, sum, p.DoublingTime)
		}
	}
}

func TestGetUnknownLine(t *testing.T) {
	reg := NewBuiltinRegistry()

	if _, err := reg.Get("CHO-K1"); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("Get unknown line: err = %v, want ErrLineNotFound", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	p := &model.CellLineProfile{Name: "U2OS", G1Duration: 11, SDuration: 8, G2Duration: 4, MDuration: 2}

	if err := reg.Register(p); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := reg.Register(p); !errors.Is(err, ErrLineExists) {
		t.Fatalf("second Register: err = %v, want ErrLineExists", err)
	}
}

func TestRegisterInvalidProfile(t *testing.T) {
	reg := NewRegistry()

	cases := []*model.CellLineProfile{
		nil,
		{Name: ""},
		{Name: "bad-duration", G1Duration: -1},
		{Name: "bad-ci", ContactInhibition: 1.5},
		{Name: "bad-gfd", GrowthFactorDependence: -0.1},
	}
	for _, p := range cases {
		if err := reg.Register(p); !errors.Is(err, ErrLineInvalid) {
			t.Errorf("Register(%+v): err = %v, want ErrLineInvalid", p, err)
		}
	}
}

func TestListIsSortedSnapshot(t *testing.T) {
	reg := NewBuiltinRegistry()

	names := reg.Names()
	want := []string{"A549", "HEK293", "HeLa", "Jurkat", "MCF-7"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}
