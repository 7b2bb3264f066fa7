package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Service types published for containers.
const (
	ServiceTypeContainer      = "container"
	ServiceTypeContainerGroup = "container-group"
)

// DescriptorFragment is the name of the embedded container descriptor on inventory objects.
const DescriptorFragment = "container"

// MaxPageSize is the largest page requested from the inventory.
const MaxPageSize = 100

// Predicate modes accepted in configuration.
const (
	PredicateStrict = "strict"
	PredicateLegacy = "legacy"
)

// ServicePredicate selects the child objects that represent containers.
type ServicePredicate struct {
	ServiceTypes      []string
	RequireDescriptor bool
}

// StrictPredicate matches container services that carry a container descriptor.
func StrictPredicate() ServicePredicate {
	return ServicePredicate{
		ServiceTypes:      []string{ServiceTypeContainer, ServiceTypeContainerGroup},
		RequireDescriptor: true,
	}
}

// LegacyPredicate matches container services by service type only.
func LegacyPredicate() ServicePredicate {
	return ServicePredicate{
		ServiceTypes: []string{ServiceTypeContainer, ServiceTypeContainerGroup},
	}
}

// ParsePredicateMode returns the predicate for a configured mode. An empty mode is strict.
func ParsePredicateMode(mode string) (ServicePredicate, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", PredicateStrict:
		return StrictPredicate(), nil
	case PredicateLegacy:
		return LegacyPredicate(), nil
	default:
		return ServicePredicate{}, fmt.Errorf("%w: unknown predicate mode %q", ErrInvalidConfig, mode)
	}
}

// Expression renders the predicate in the inventory query language.
func (p ServicePredicate) Expression() string {
	terms := make([]string, 0, len(p.ServiceTypes))
	for _, st := range p.ServiceTypes {
		terms = append(terms, fmt.Sprintf("serviceType eq '%s'", st))
	}
	expr := strings.Join(terms, " or ")
	if !p.RequireDescriptor {
		return expr
	}
	if len(terms) == 0 {
		return fmt.Sprintf("has(%s)", DescriptorFragment)
	}
	if len(terms) > 1 {
		expr = "(" + expr + ")"
	}
	return fmt.Sprintf("%s and has(%s)", expr, DescriptorFragment)
}

// Matches evaluates the predicate against an object's service type and descriptor presence.
func (p ServicePredicate) Matches(serviceType string, hasDescriptor bool) bool {
	if p.RequireDescriptor && !hasDescriptor {
		return false
	}
	if len(p.ServiceTypes) == 0 {
		return true
	}
	return slices.Contains(p.ServiceTypes, serviceType)
}

// ChildQuery is a query for the child objects of a device.
type ChildQuery struct {
	Predicate      ServicePredicate
	PageSize       int
	WithTotalPages bool
}

// Normalize clamps the page size into [1, MaxPageSize].
func (q ChildQuery) Normalize() ChildQuery {
	if q.PageSize <= 0 || q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}
