package kb

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/biodynlabs/cellculture-simulator/model"
)

var (
	// ErrLineExists indicates a cell line with the same name is already registered.
	ErrLineExists = errors.New("cell line already exists")
	// ErrLineNotFound indicates a requested cell line is not in the registry.
	ErrLineNotFound = errors.New("cell line not found")
	// ErrLineInvalid indicates a profile failed validation on registration.
	ErrLineInvalid = errors.New("invalid cell line profile")
)

// Registry is an in-memory, thread-safe store of cell line profiles. Profiles
// are registered once (at process start or from a config file) and handed out
// as shared read-only pointers; the registry never mutates a stored profile.
type Registry struct {
	mu    sync.RWMutex
	lines map[string]*model.CellLineProfile
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{lines: make(map[string]*model.CellLineProfile)}
}

// NewBuiltinRegistry constructs a registry seeded with the built-in cell line
// database (HeLa, MCF-7, A549, HEK293, Jurkat).
func NewBuiltinRegistry() *Registry {
	reg := NewRegistry()
	for _, p := range builtinLines() {
		// Built-in profiles are constructed valid; a failure here is a
		// programming error.
		if err := reg.Register(p); err != nil {
			panic(fmt.Sprintf("kb: registering builtin line %q: %v", p.Name, err))
		}
	}
	return reg
}

// Register adds a profile. It returns ErrLineExists if the name is taken and
// ErrLineInvalid if the profile fails basic validation.
func (r *Registry) Register(p *model.CellLineProfile) error {
	if err := validateProfile(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lines[p.Name]; exists {
		return fmt.Errorf("%w: %q", ErrLineExists, p.Name)
	}
	r.lines[p.Name] = p
	return nil
}

// Get returns the shared profile for the named line.
func (r *Registry) Get(name string) (*model.CellLineProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.lines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLineNotFound, name)
	}
	return p, nil
}

// List returns a snapshot slice of all profiles, sorted by name so callers
// (and API responses) see a stable order.
func (r *Registry) List() []*model.CellLineProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*model.CellLineProfile, 0, len(r.lines))
	for _, p := range r.lines {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Names returns the sorted names of all registered lines.
func (r *Registry) Names() []string {
	lines := r.List()
	names := make([]string, len(lines))
	for i, p := range lines {
		names[i] = p.Name
	}
	return names
}

func validateProfile(p *model.CellLineProfile) error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", ErrLineInvalid)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrLineInvalid)
	}
	for phase, d := range map[model.Phase]float64{
		model.PhaseG1: p.G1Duration,
		model.PhaseS:  p.SDuration,
		model.PhaseG2: p.G2Duration,
		model.PhaseM:  p.MDuration,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s duration %v < 0 for %q", ErrLineInvalid, phase, d, p.Name)
		}
	}
	if p.GrowthFactorDependence < 0 || p.GrowthFactorDependence > 1 {
		return fmt.Errorf("%w: growth factor dependence %v outside [0,1] for %q", ErrLineInvalid, p.GrowthFactorDependence, p.Name)
	}
	if p.ContactInhibition < 0 || p.ContactInhibition > 1 {
		return fmt.Errorf("%w: contact inhibition %v outside [0,1] for %q", ErrLineInvalid, p.ContactInhibition, p.Name)
	}
	return nil
}
